package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
)

// Options son los valores que la página necesita para armar los controles de filtro
type Options struct {
	Labels         []string   `json:"labels"`
	MinDate        *time.Time `json:"min_date,omitempty"`
	MaxDate        *time.Time `json:"max_date,omitempty"`
	Columns        []Column   `json:"columns"`
	NumericColumns []Column   `json:"numeric_columns"`

	// Rango observado de la columna elegida para el filtro numérico
	RangeMin *float64 `json:"range_min,omitempty"`
	RangeMax *float64 `json:"range_max,omitempty"`
}

// Result es la salida del pipeline de filtros y orden
type Result struct {
	Rows     []models.DerivedRow
	Total    int
	Warnings []string
	Options  Options

	// RangeSkipped indica que se pidió un filtro numérico que no se pudo aplicar
	RangeSkipped bool
}

// ValidateFilter rechaza valores que la UI nunca envía
func ValidateFilter(state models.FilterState) error {
	switch strings.ToLower(state.Type) {
	case "", models.FilterAll, string(models.SwapBuy), string(models.SwapSell):
	default:
		return fmt.Errorf("tipo de transacción inválido: %q", state.Type)
	}
	switch state.SortDir {
	case "", models.SortAscending, models.SortDescending:
	default:
		return fmt.Errorf("orden inválido: %q", state.SortDir)
	}
	if state.StartDate != nil && state.EndDate != nil && state.EndDate.Before(*state.StartDate) {
		return fmt.Errorf("el rango de fechas es inválido")
	}
	if state.RangeMin != nil && state.RangeMax != nil && *state.RangeMin > *state.RangeMax {
		return fmt.Errorf("el rango numérico es inválido: %v > %v", *state.RangeMin, *state.RangeMax)
	}
	return nil
}

type predicate func(models.DerivedRow) bool

// Run aplica los filtros (conjuntivos, el orden no altera el resultado) y luego el orden.
// Los valores por defecto de fechas y rango numérico salen de todas las filas cargadas.
func Run(rows []models.DerivedRow, state models.FilterState, v Variant, cols []Column) Result {
	result := Result{
		Total: len(rows),
		Options: Options{
			Labels:         distinctLabels(rows),
			Columns:        cols,
			NumericColumns: NumericColumns(cols),
		},
	}
	result.Options.MinDate, result.Options.MaxDate = dateBounds(rows)

	var preds []predicate
	if p := typePredicate(state.Type); p != nil {
		preds = append(preds, p)
	}
	if p := labelPredicate(state.Label); p != nil {
		preds = append(preds, p)
	}
	if p := datePredicate(state, v, result.Options.MinDate, result.Options.MaxDate); p != nil {
		preds = append(preds, p)
	}
	if p := searchPredicate(state.Search); p != nil {
		preds = append(preds, p)
	}
	if state.RangeCol != "" {
		p, warning := rangePredicate(rows, state, cols, &result.Options)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
			result.RangeSkipped = true
		}
		if p != nil {
			preds = append(preds, p)
		}
	}

	filtered := make([]models.DerivedRow, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, preds) {
			filtered = append(filtered, row)
		}
	}

	if state.SortCol != "" {
		col, ok := FindColumn(cols, state.SortCol)
		if ok {
			SortRows(filtered, col, state.SortDir)
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown sort column %s", state.SortCol))
		}
	}

	result.Rows = filtered
	return result
}

func matchesAll(row models.DerivedRow, preds []predicate) bool {
	for _, p := range preds {
		if !p(row) {
			return false
		}
	}
	return true
}

// typePredicate compara contra el tipo tal como viene de la colección, no contra la etiqueta formateada
func typePredicate(swapType string) predicate {
	if swapType == "" || strings.EqualFold(swapType, models.FilterAll) {
		return nil
	}
	return func(row models.DerivedRow) bool {
		return strings.EqualFold(string(row.Record.SwapType), swapType)
	}
}

func labelPredicate(label string) predicate {
	if label == "" || label == models.LabelAll {
		return nil
	}
	return func(row models.DerivedRow) bool {
		return row.Record.Label == label
	}
}

// datePredicate aplica [start, end]. Con InclusiveEndDay el fin se corre un día.
// Una fila sin timestamp válido no pasa un filtro de fechas activo.
func datePredicate(state models.FilterState, v Variant, minDate, maxDate *time.Time) predicate {
	if state.StartDate == nil && state.EndDate == nil {
		return nil
	}
	start, end := state.StartDate, state.EndDate
	if start == nil {
		start = minDate
	}
	if end == nil {
		end = maxDate
	}

	var lower, upper *time.Time
	if start != nil {
		s := truncateDay(*start)
		lower = &s
	}
	if end != nil {
		e := truncateDay(*end)
		if v.InclusiveEndDay {
			e = e.AddDate(0, 0, 1)
		}
		upper = &e
	}

	return func(row models.DerivedRow) bool {
		t, ok := TimeValue(row)
		if !ok {
			return false
		}
		if lower != nil && t.Before(*lower) {
			return false
		}
		if upper != nil && t.After(*upper) {
			return false
		}
		return true
	}
}

// searchPredicate busca sin distinguir mayúsculas en el bloque o en el maker
func searchPredicate(query string) predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(row models.DerivedRow) bool {
		if strings.Contains(strconv.FormatInt(row.Record.BlockNumber, 10), q) {
			return true
		}
		return strings.Contains(strings.ToLower(row.Record.Maker), q)
	}
}

// rangePredicate filtra por [min, max] sobre una columna numérica.
// Si la columna no tiene valores o es constante el filtro se omite con un aviso.
func rangePredicate(rows []models.DerivedRow, state models.FilterState, cols []Column, opts *Options) (predicate, string) {
	col, ok := FindColumn(cols, state.RangeCol)
	if !ok || !col.Numeric {
		return nil, fmt.Sprintf("No valid range available for %s", state.RangeCol)
	}

	lo, hi, ok := observedRange(rows, col.Key)
	if !ok {
		return nil, fmt.Sprintf("No valid range available for %s", col.Header)
	}
	opts.RangeMin, opts.RangeMax = &lo, &hi
	if lo == hi {
		return nil, fmt.Sprintf("No valid range available for %s", col.Header)
	}

	if state.RangeMin != nil {
		lo = *state.RangeMin
	}
	if state.RangeMax != nil {
		hi = *state.RangeMax
	}
	key := col.Key
	return func(row models.DerivedRow) bool {
		n := NumberValue(row, key)
		return n.Valid && n.Value >= lo && n.Value <= hi
	}, ""
}

func observedRange(rows []models.DerivedRow, key string) (float64, float64, bool) {
	var lo, hi float64
	found := false
	for _, row := range rows {
		n := NumberValue(row, key)
		if !n.Valid {
			continue
		}
		if !found {
			lo, hi, found = n.Value, n.Value, true
			continue
		}
		if n.Value < lo {
			lo = n.Value
		}
		if n.Value > hi {
			hi = n.Value
		}
	}
	return lo, hi, found
}

// SortRows ordena de forma estable. Los valores nulos o no parseables
// quedan siempre al final, en ambas direcciones.
func SortRows(rows []models.DerivedRow, col Column, dir models.SortDirection) {
	desc := dir == models.SortDescending
	sort.SliceStable(rows, func(i, j int) bool {
		c, aNull, bNull := compareRows(rows[i], rows[j], col)
		switch {
		case aNull && bNull:
			return false
		case aNull:
			return false
		case bNull:
			return true
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareRows(a, b models.DerivedRow, col Column) (int, bool, bool) {
	switch col.Kind {
	case KindNumber:
		x, y := NumberValue(a, col.Key), NumberValue(b, col.Key)
		if !x.Valid || !y.Valid {
			return 0, !x.Valid, !y.Valid
		}
		return compareFloat(x.Value, y.Value), false, false
	case KindTime:
		x, okA := TimeValue(a)
		y, okB := TimeValue(b)
		if !okA || !okB {
			return 0, !okA, !okB
		}
		return x.Compare(y), false, false
	default:
		x, y := StringValue(a, col.Key), StringValue(b, col.Key)
		if x == "" || y == "" {
			return 0, x == "", y == ""
		}
		return strings.Compare(x, y), false, false
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func distinctLabels(rows []models.DerivedRow) []string {
	seen := make(map[string]struct{})
	labels := []string{}
	for _, row := range rows {
		label := row.Record.Label
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func dateBounds(rows []models.DerivedRow) (*time.Time, *time.Time) {
	var minDate, maxDate *time.Time
	for _, row := range rows {
		t, ok := TimeValue(row)
		if !ok {
			continue
		}
		if minDate == nil || t.Before(*minDate) {
			tt := t
			minDate = &tt
		}
		if maxDate == nil || t.After(*maxDate) {
			tt := t
			maxDate = &tt
		}
	}
	return minDate, maxDate
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
