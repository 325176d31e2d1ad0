package services

import (
	"strings"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
)

// ColumnKind define el orden natural de una columna
type ColumnKind int

const (
	KindNumber ColumnKind = iota
	KindTime
	KindString
)

// Claves estables de columna, usadas en los parámetros sort y range_col
const (
	ColBlock          = "block"
	ColTxHash         = "tx_hash"
	ColMaker          = "maker"
	ColTxType         = "tx_type"
	ColSwapType       = "swap_type"
	ColTime           = "time"
	ColToken          = "token"
	ColVirtual        = "virtual"
	ColGenesisUSD     = "genesis_usd"
	ColTxValue        = "tx_value"
	ColGenesisVirtual = "genesis_virtual"
	ColVirtualUSD     = "virtual_usd"
)

type Column struct {
	Key     string     `json:"key"`
	Header  string     `json:"header"`
	Kind    ColumnKind `json:"-"`
	Numeric bool       `json:"numeric"` // elegible para el filtro por rango
}

// Columns devuelve las columnas de la tabla en el orden de la variante
func Columns(v Variant, symbol string) []Column {
	cols := []Column{
		{Key: ColBlock, Header: "BLOCK", Kind: KindNumber},
		{Key: ColTxHash, Header: "TX HASH", Kind: KindString},
		{Key: ColMaker, Header: "MAKER", Kind: KindString},
		{Key: ColTxType, Header: "TX TYPE", Kind: KindString},
		{Key: ColSwapType, Header: "SWAP TYPE", Kind: KindString},
		{Key: ColTime, Header: "TIME", Kind: KindTime},
		{Key: ColToken, Header: strings.ToUpper(symbol), Kind: KindNumber, Numeric: true},
		{Key: ColVirtual, Header: "VIRTUAL", Kind: KindNumber, Numeric: true},
		{Key: ColGenesisUSD, Header: "GENESIS PRICE ($)", Kind: KindNumber, Numeric: true},
	}
	if v.IncludeValue {
		cols = append(cols, Column{Key: ColTxValue, Header: "TRANSACTION VALUE ($)", Kind: KindNumber, Numeric: true})
	}
	return append(cols,
		Column{Key: ColGenesisVirtual, Header: "GENESIS PRICE ($VIRTUAL)", Kind: KindNumber, Numeric: true},
		Column{Key: ColVirtualUSD, Header: "VIRTUAL PRICE ($)", Kind: KindNumber, Numeric: true},
	)
}

// NumericColumns filtra las columnas elegibles para el filtro por rango
func NumericColumns(cols []Column) []Column {
	var numeric []Column
	for _, c := range cols {
		if c.Numeric {
			numeric = append(numeric, c)
		}
	}
	return numeric
}

// FindColumn busca una columna por clave
func FindColumn(cols []Column, key string) (Column, bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// NumberValue devuelve el valor numérico de la fila para la columna.
// NaN e infinito se tratan como nulos para filtrar y ordenar.
func NumberValue(row models.DerivedRow, key string) models.NullFloat {
	n := rawNumberValue(row, key)
	if !n.IsFinite() {
		return models.NullFloat{}
	}
	return n
}

func rawNumberValue(row models.DerivedRow, key string) models.NullFloat {
	switch key {
	case ColBlock:
		return models.Float(float64(row.Record.BlockNumber))
	case ColToken:
		return row.Amounts.Token
	case ColVirtual:
		return row.Amounts.Counter
	case ColGenesisUSD:
		return row.Record.GenesisUSDPrice
	case ColTxValue:
		return row.Value
	case ColGenesisVirtual:
		return row.Record.GenesisVirtualPrice
	case ColVirtualUSD:
		return row.Record.VirtualUSDPrice
	}
	return models.NullFloat{}
}

// StringValue devuelve el valor de texto sin formato de la fila para la columna
func StringValue(row models.DerivedRow, key string) string {
	switch key {
	case ColTxHash:
		return row.Record.TxHash
	case ColMaker:
		return row.Record.Maker
	case ColTxType:
		return string(row.Record.SwapType)
	case ColSwapType:
		return row.Record.Label
	case ColTime:
		return row.Record.TimestampReadable
	}
	return ""
}

// TimeValue devuelve el timestamp parseado; ok es false si no se pudo parsear
func TimeValue(row models.DerivedRow) (time.Time, bool) {
	return row.Time, row.HasTime()
}
