package services

import (
	"strings"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// amountPlaces es la cantidad de decimales de los montos normalizados
const amountPlaces = 4

// Normalize elige los montos del token y de la contraparte según el tipo de swap.
// buy lee el OUT del token y el IN de la contraparte, sell lo inverso.
func Normalize(rec models.SwapRecord) models.NormalizedAmounts {
	switch rec.SwapType {
	case models.SwapBuy:
		return models.NormalizedAmounts{
			Kind:    models.AmountNormalized,
			Token:   Round(rec.TokenOut),
			Counter: Round(rec.CounterIn),
		}
	case models.SwapSell:
		return models.NormalizedAmounts{
			Kind:    models.AmountNormalized,
			Token:   Round(rec.TokenIn),
			Counter: Round(rec.CounterOut),
		}
	default:
		return models.NormalizedAmounts{Kind: models.AmountUnrecognizedType}
	}
}

// Round redondea a 4 decimales (mitad al par); un nulo o no finito queda nulo
func Round(n models.NullFloat) models.NullFloat {
	if !n.IsFinite() {
		return models.NullFloat{}
	}
	return models.Float(decimal.NewFromFloat(n.Value).RoundBank(amountPlaces).InexactFloat64())
}

// TransactionValue calcula monto del token × precio USD del token
func TransactionValue(amount, price models.NullFloat) models.NullFloat {
	if !amount.IsFinite() || !price.IsFinite() {
		return models.NullFloat{}
	}
	value := decimal.NewFromFloat(amount.Value).Mul(decimal.NewFromFloat(price.Value))
	return models.Float(value.RoundBank(amountPlaces).InexactFloat64())
}

// ParseTimestamp interpreta timestampReadable; devuelve el tiempo cero si no se puede
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := cast.ToTimeInDefaultLocationE(raw, time.UTC); err == nil {
		return t
	}
	// formatos sin segundos que cast no reconoce
	for _, layout := range extraTimestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

var extraTimestampLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02-01-2006 15:04",
	"2006/01/02 15:04:05",
}

// Derive arma las filas derivadas; ninguna fila se descarta
func Derive(records []models.SwapRecord, v Variant) []models.DerivedRow {
	rows := make([]models.DerivedRow, 0, len(records))
	for _, rec := range records {
		row := models.DerivedRow{
			Record:  rec,
			Amounts: Normalize(rec),
			Time:    ParseTimestamp(rec.TimestampReadable),
		}
		if v.IncludeValue {
			row.Value = TransactionValue(row.Amounts.Token, rec.GenesisUSDPrice)
		}
		rows = append(rows, row)
	}
	return rows
}
