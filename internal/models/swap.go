package models

import (
	"math"
	"time"
)

// SwapType es el discriminador de la transacción tal como viene de la colección
type SwapType string

const (
	SwapBuy  SwapType = "buy"
	SwapSell SwapType = "sell"
)

// NullFloat representa un número que puede faltar en el documento
type NullFloat struct {
	Value float64
	Valid bool
}

func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Finite es como Float pero NaN e infinito quedan como nulo
func Finite(v float64) NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat{}
	}
	return Float(v)
}

// IsFinite indica que el valor es válido y es un número finito
func (n NullFloat) IsFinite() bool {
	return n.Valid && !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)
}

// Ptr devuelve nil cuando el valor no es válido (útil para serializar a JSON)
func (n NullFloat) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// SwapRecord es un documento de la colección {token}_swap ya resuelto a través del FieldMap
type SwapRecord struct {
	BlockNumber         int64     `json:"blockNumber"`
	TxHash              string    `json:"txHash"`
	Maker               string    `json:"maker"`
	SwapType            SwapType  `json:"swapType"`
	Label               string    `json:"label"`
	TimestampReadable   string    `json:"timestampReadable"`
	TokenIn             NullFloat `json:"-"`
	TokenOut            NullFloat `json:"-"`
	CounterIn           NullFloat `json:"-"`
	CounterOut          NullFloat `json:"-"`
	GenesisUSDPrice     NullFloat `json:"-"` // genesis_usdc_price
	GenesisVirtualPrice NullFloat `json:"-"` // genesis_virtual_price
	VirtualUSDPrice     NullFloat `json:"-"` // virtual_usdc_price
}

// AmountKind indica qué rama de normalización se aplicó a la fila
type AmountKind int

const (
	AmountNormalized AmountKind = iota
	AmountUnrecognizedType
)

func (k AmountKind) String() string {
	if k == AmountNormalized {
		return "normalized"
	}
	return "unrecognized_type"
}

// NormalizedAmounts es el resultado etiquetado de la normalización.
// Con AmountUnrecognizedType ambos montos son nulos.
type NormalizedAmounts struct {
	Kind    AmountKind
	Token   NullFloat
	Counter NullFloat
}

// DerivedRow es un SwapRecord con los montos normalizados y los campos calculados
type DerivedRow struct {
	Record  SwapRecord
	Amounts NormalizedAmounts
	// Value = Token * GenesisUSDPrice, solo en la variante de detalle
	Value NullFloat
	// Time es TimestampReadable ya parseado; cero si no se pudo parsear
	Time time.Time
}

// HasTime indica si el timestamp de la fila se pudo parsear
func (r DerivedRow) HasTime() bool {
	return !r.Time.IsZero()
}
