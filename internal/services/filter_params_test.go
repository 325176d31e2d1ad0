package services

import (
	"net/url"
	"testing"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterStateDefaults(t *testing.T) {
	state, err := ParseFilterState(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, models.FilterAll, state.Type)
	assert.Equal(t, models.LabelAll, state.Label)
	assert.Equal(t, ColBlock, state.SortCol)
	assert.Equal(t, models.SortAscending, state.SortDir)
	assert.Nil(t, state.StartDate)
	assert.Nil(t, state.EndDate)
	assert.Nil(t, state.RangeMin)
	assert.Empty(t, state.RangeCol)
}

func TestParseFilterStateAllParams(t *testing.T) {
	q := url.Values{
		"type":      {"SELL"},
		"label":     {"Sniper"},
		"start":     {"2024-05-01"},
		"end":       {"2024-05-31"},
		"q":         {"0xabc"},
		"range_col": {ColVirtual},
		"range_min": {"0.5"},
		"range_max": {"10"},
		"sort":      {ColTime},
		"order":     {"DESC"},
	}

	state, err := ParseFilterState(q)
	require.NoError(t, err)
	assert.Equal(t, "sell", state.Type)
	assert.Equal(t, "Sniper", state.Label)
	assert.Equal(t, "2024-05-01", state.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-05-31", state.EndDate.Format("2006-01-02"))
	assert.Equal(t, "0xabc", state.Search)
	assert.Equal(t, ColVirtual, state.RangeCol)
	assert.Equal(t, 0.5, *state.RangeMin)
	assert.Equal(t, 10.0, *state.RangeMax)
	assert.Equal(t, ColTime, state.SortCol)
	assert.Equal(t, models.SortDescending, state.SortDir)
}

func TestParseFilterStateErrors(t *testing.T) {
	bad := []url.Values{
		{"start": {"01/05/2024"}},
		{"range_min": {"abc"}},
		{"type": {"mint"}},
		{"order": {"sideways"}},
		{"start": {"2024-06-01"}, "end": {"2024-05-01"}},
		{"range_min": {"5"}, "range_max": {"1"}},
	}
	for _, q := range bad {
		_, err := ParseFilterState(q)
		assert.Error(t, err, "query %v", q)
	}
}
