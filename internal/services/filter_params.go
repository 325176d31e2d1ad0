package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
)

const dateParamLayout = "2006-01-02"

// ParseFilterState arma el FilterState a partir de los parámetros de la página.
// Sin "sort" se ordena por bloque ascendente, igual que el primer render.
func ParseFilterState(q url.Values) (models.FilterState, error) {
	state := models.DefaultFilterState()
	if v := strings.ToLower(strings.TrimSpace(q.Get("type"))); v != "" {
		state.Type = v
	}
	if v := q.Get("label"); v != "" {
		state.Label = v
	}
	state.Search = q.Get("q")
	state.SortCol = ColBlock
	if v := q.Get("sort"); v != "" {
		state.SortCol = v
	}
	if v := strings.ToLower(q.Get("order")); v != "" {
		state.SortDir = models.SortDirection(v)
	}
	state.RangeCol = q.Get("range_col")

	var err error
	if state.StartDate, err = parseDateParam(q, "start"); err != nil {
		return state, err
	}
	if state.EndDate, err = parseDateParam(q, "end"); err != nil {
		return state, err
	}
	if state.RangeMin, err = parseFloatParam(q, "range_min"); err != nil {
		return state, err
	}
	if state.RangeMax, err = parseFloatParam(q, "range_max"); err != nil {
		return state, err
	}

	return state, ValidateFilter(state)
}

func parseDateParam(q url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateParamLayout, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida en %s: %q", key, raw)
	}
	return &t, nil
}

func parseFloatParam(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("número inválido en %s: %q", key, raw)
	}
	return &f, nil
}
