package models

// TransactionDetails es una fila derivada tal como la devuelve /api/transactions
type TransactionDetails struct {
	BlockNumber         int64    `json:"block_number"`
	TxHash              string   `json:"tx_hash"`
	Maker               string   `json:"maker"`
	SwapType            SwapType `json:"swap_type"`
	Label               string   `json:"label"`
	Timestamp           string   `json:"timestamp"`
	AmountKind          string   `json:"amount_kind"`
	TokenAmount         *float64 `json:"token_amount"`   // nil si el tipo no se reconoce
	CounterAmount       *float64 `json:"counter_amount"` // nil si el tipo no se reconoce
	TransactionValue    *float64 `json:"transaction_value,omitempty"`
	GenesisUSDPrice     *float64 `json:"genesis_usd_price"`
	GenesisVirtualPrice *float64 `json:"genesis_virtual_price"`
	VirtualUSDPrice     *float64 `json:"virtual_usd_price"`
}

// NewTransactionDetails convierte una fila derivada; withValue agrega el valor en USD
func NewTransactionDetails(row DerivedRow, withValue bool) TransactionDetails {
	details := TransactionDetails{
		BlockNumber:         row.Record.BlockNumber,
		TxHash:              row.Record.TxHash,
		Maker:               row.Record.Maker,
		SwapType:            row.Record.SwapType,
		Label:               row.Record.Label,
		Timestamp:           row.Record.TimestampReadable,
		AmountKind:          row.Amounts.Kind.String(),
		TokenAmount:         row.Amounts.Token.Ptr(),
		CounterAmount:       row.Amounts.Counter.Ptr(),
		GenesisUSDPrice:     row.Record.GenesisUSDPrice.Ptr(),
		GenesisVirtualPrice: row.Record.GenesisVirtualPrice.Ptr(),
		VirtualUSDPrice:     row.Record.VirtualUSDPrice.Ptr(),
	}
	if withValue {
		details.TransactionValue = row.Value.Ptr()
	}
	return details
}

// TransactionsResponse es el cuerpo JSON de /api/transactions
type TransactionsResponse struct {
	Token        string               `json:"token"`
	Variant      string               `json:"variant"`
	Total        int                  `json:"total"`
	Count        int                  `json:"count"`
	Warnings     []string             `json:"warnings"`
	Filter       FilterState          `json:"filter"`
	Transactions []TransactionDetails `json:"transactions"`
}
