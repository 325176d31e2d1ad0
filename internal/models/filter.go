package models

import "time"

// SortDirection del ordenamiento final de la tabla
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

const (
	// FilterAll desactiva el filtro de tipo de transacción
	FilterAll = "all"
	// LabelAll desactiva el filtro de categoría
	LabelAll = "All"
)

// FilterState se reconstruye en cada request a partir de los parámetros del usuario.
// Un puntero nil significa "sin valor elegido".
type FilterState struct {
	Type      string        `json:"type"`  // all | buy | sell
	Label     string        `json:"label"` // All o una categoría exacta
	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	Search    string        `json:"search,omitempty"`
	RangeCol  string        `json:"range_col,omitempty"`
	RangeMin  *float64      `json:"range_min,omitempty"`
	RangeMax  *float64      `json:"range_max,omitempty"`
	SortCol   string        `json:"sort,omitempty"`
	SortDir   SortDirection `json:"order"`
}

// DefaultFilterState devuelve el estado con el que se abre la página
func DefaultFilterState() FilterState {
	return FilterState{
		Type:    FilterAll,
		Label:   LabelAll,
		SortDir: SortAscending,
	}
}
