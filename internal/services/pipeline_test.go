package services

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func ptr(f float64) *float64 {
	return &f
}

func sampleRows(v Variant) []models.DerivedRow {
	return Derive([]models.SwapRecord{
		{BlockNumber: 100, Maker: "0xABC123def", SwapType: models.SwapBuy, Label: "Dev", TimestampReadable: "2024-05-01 10:00:00",
			TokenOut: models.Float(50), CounterIn: models.Float(1), GenesisUSDPrice: models.Float(0.2)},
		{BlockNumber: 101, Maker: "0xdef999", SwapType: models.SwapSell, Label: "Sniper", TimestampReadable: "2024-05-02 23:59:00",
			TokenIn: models.Float(20), CounterOut: models.Float(0.4), GenesisUSDPrice: models.Float(0.25)},
		{BlockNumber: 102, Maker: "0x111abc", SwapType: models.SwapBuy, Label: "Dev", TimestampReadable: "2024-05-03 08:30:00",
			TokenOut: models.Float(5), CounterIn: models.Float(0.1)},
		{BlockNumber: 2100, Maker: "0x222", SwapType: "transfer", Label: "Other", TimestampReadable: "bad"},
		{BlockNumber: 103, Maker: "0x333", SwapType: models.SwapSell, Label: "Sniper", TimestampReadable: "2024-05-04 00:00:00",
			TokenIn: models.Float(80), CounterOut: models.Float(2), GenesisUSDPrice: models.Float(0.3)},
	}, v)
}

func blocks(rows []models.DerivedRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record.BlockNumber)
	}
	return out
}

func run(state models.FilterState, v Variant) Result {
	return Run(sampleRows(v), state, v, Columns(v, "abc"))
}

func TestRunDefaultStateKeepsEverything(t *testing.T) {
	state := models.DefaultFilterState()
	state.SortCol = ColBlock

	result := run(state, VariantTable)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, []int64{100, 101, 102, 103, 2100}, blocks(result.Rows))
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"Dev", "Other", "Sniper"}, result.Options.Labels)
	require.NotNil(t, result.Options.MinDate)
	require.NotNil(t, result.Options.MaxDate)
	assert.Equal(t, "2024-05-01", result.Options.MinDate.Format("2006-01-02"))
	assert.Equal(t, "2024-05-04", result.Options.MaxDate.Format("2006-01-02"))
}

func TestRunTypeFilter(t *testing.T) {
	state := models.DefaultFilterState()
	state.Type = "sell"
	state.SortCol = ColBlock

	result := run(state, VariantTable)
	assert.Equal(t, []int64{101, 103}, blocks(result.Rows))
	for _, row := range result.Rows {
		assert.Equal(t, models.SwapSell, row.Record.SwapType)
	}
}

func TestRunLabelFilterIsExact(t *testing.T) {
	state := models.DefaultFilterState()
	state.Label = "Dev"
	state.SortCol = ColBlock
	assert.Equal(t, []int64{100, 102}, blocks(run(state, VariantTable).Rows))

	state.Label = "dev"
	assert.Empty(t, run(state, VariantTable).Rows)
}

func TestRunSearchBlockOrMaker(t *testing.T) {
	state := models.DefaultFilterState()
	state.SortCol = ColBlock

	state.Search = "0xabc"
	assert.Equal(t, []int64{100}, blocks(run(state, VariantTable).Rows))

	state.Search = "ABC"
	assert.Equal(t, []int64{100, 102}, blocks(run(state, VariantTable).Rows))

	state.Search = "210"
	assert.Equal(t, []int64{2100}, blocks(run(state, VariantTable).Rows))
}

func TestRunDateFilterTableVariantEndsAtMidnight(t *testing.T) {
	state := models.DefaultFilterState()
	state.StartDate = date(2024, 5, 1)
	state.EndDate = date(2024, 5, 2)
	state.SortCol = ColBlock

	// 23:59 del día final queda afuera en la tabla
	assert.Equal(t, []int64{100}, blocks(run(state, VariantTable).Rows))
}

func TestRunDateFilterDetailVariantIncludesEndDay(t *testing.T) {
	state := models.DefaultFilterState()
	state.StartDate = date(2024, 5, 1)
	state.EndDate = date(2024, 5, 2)
	state.SortCol = ColBlock

	assert.Equal(t, []int64{100, 101}, blocks(run(state, VariantDetail).Rows))
}

func TestRunDateFilterSingleBound(t *testing.T) {
	state := models.DefaultFilterState()
	state.StartDate = date(2024, 5, 3)
	state.SortCol = ColBlock

	// sin fin se usa el máximo observado; la fila sin fecha no pasa
	assert.Equal(t, []int64{102, 103}, blocks(run(state, VariantTable).Rows))
}

func TestRunRangeFilter(t *testing.T) {
	state := models.DefaultFilterState()
	state.RangeCol = ColToken
	state.RangeMin = ptr(10)
	state.RangeMax = ptr(60)
	state.SortCol = ColBlock

	result := run(state, VariantTable)
	assert.Equal(t, []int64{100, 101}, blocks(result.Rows))
	assert.False(t, result.RangeSkipped)
	require.NotNil(t, result.Options.RangeMin)
	assert.Equal(t, 5.0, *result.Options.RangeMin)
	assert.Equal(t, 80.0, *result.Options.RangeMax)
}

func TestRunRangeFilterDefaultsToObservedRange(t *testing.T) {
	state := models.DefaultFilterState()
	state.RangeCol = ColToken
	state.SortCol = ColBlock

	// la fila con tipo no reconocido no tiene monto y queda afuera
	assert.Equal(t, []int64{100, 101, 102, 103}, blocks(run(state, VariantTable).Rows))
}

func nanPriceRows() []models.DerivedRow {
	rows := Derive([]models.SwapRecord{
		{BlockNumber: 1, SwapType: models.SwapBuy, TokenOut: models.Float(1), TimestampReadable: "2024-05-01 00:00:00"},
		{BlockNumber: 2, SwapType: models.SwapBuy, TokenOut: models.Float(1), GenesisUSDPrice: models.Float(1), TimestampReadable: "2024-05-01 00:00:00"},
		{BlockNumber: 3, SwapType: models.SwapBuy, TokenOut: models.Float(1), GenesisUSDPrice: models.Float(2), TimestampReadable: "2024-05-01 00:00:00"},
	}, VariantTable)
	// un NaN que llega a la fila derivada sin pasar por el decode
	rows[0].Record.GenesisUSDPrice = models.Float(math.NaN())
	return rows
}

func TestRunRangeFilterIgnoresNaN(t *testing.T) {
	state := models.DefaultFilterState()
	state.RangeCol = ColGenesisUSD
	state.SortCol = ColBlock

	result := Run(nanPriceRows(), state, VariantTable, Columns(VariantTable, "abc"))
	assert.False(t, result.RangeSkipped)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []int64{2, 3}, blocks(result.Rows))
}

func TestSortRowsNaNLastBothDirections(t *testing.T) {
	col, ok := FindColumn(Columns(VariantTable, "abc"), ColGenesisUSD)
	require.True(t, ok)

	rows := nanPriceRows()
	SortRows(rows, col, models.SortAscending)
	assert.Equal(t, []int64{2, 3, 1}, blocks(rows))

	SortRows(rows, col, models.SortDescending)
	assert.Equal(t, []int64{3, 2, 1}, blocks(rows))
}

func TestRunRangeFilterSkippedWhenConstant(t *testing.T) {
	rows := Derive([]models.SwapRecord{
		{BlockNumber: 1, SwapType: models.SwapBuy, VirtualUSDPrice: models.Float(1.5)},
		{BlockNumber: 2, SwapType: models.SwapBuy, VirtualUSDPrice: models.Float(1.5)},
	}, VariantTable)
	state := models.DefaultFilterState()
	state.RangeCol = ColVirtualUSD
	state.RangeMin = ptr(100)

	result := Run(rows, state, VariantTable, Columns(VariantTable, "abc"))
	assert.Len(t, result.Rows, 2)
	assert.True(t, result.RangeSkipped)
	assert.Equal(t, []string{"No valid range available for VIRTUAL PRICE ($)"}, result.Warnings)
}

func TestRunRangeFilterSkippedWhenNoValues(t *testing.T) {
	state := models.DefaultFilterState()
	state.RangeCol = ColGenesisVirtual

	result := run(state, VariantTable)
	assert.Len(t, result.Rows, 5)
	assert.True(t, result.RangeSkipped)
	assert.Len(t, result.Warnings, 1)
}

func TestRunRangeFilterUnknownColumn(t *testing.T) {
	state := models.DefaultFilterState()
	state.RangeCol = ColTxValue

	// la columna de valor solo existe en la variante de detalle
	result := run(state, VariantTable)
	assert.Len(t, result.Rows, 5)
	assert.Equal(t, []string{"No valid range available for tx_value"}, result.Warnings)

	// valores: 10, 5, nulo, nulo, 24
	result = run(state, VariantDetail)
	assert.False(t, result.RangeSkipped)
	assert.Equal(t, []int64{100, 101, 103}, blocks(result.Rows))
}

func TestRunUnknownSortColumn(t *testing.T) {
	state := models.DefaultFilterState()
	state.SortCol = "nope"

	result := run(state, VariantTable)
	assert.Len(t, result.Rows, 5)
	assert.Equal(t, []string{"Unknown sort column nope"}, result.Warnings)
}

func TestRunFiltersAreOrderIndependent(t *testing.T) {
	state := models.DefaultFilterState()
	state.Type = "buy"
	state.Label = "Dev"
	state.Search = "0x"
	state.StartDate = date(2024, 5, 1)
	state.RangeCol = ColToken
	state.RangeMin = ptr(1)
	state.SortCol = ColBlock

	want := blocks(run(state, VariantTable).Rows)
	assert.Equal(t, []int64{100, 102}, want)

	rows := sampleRows(VariantTable)
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		rnd.Shuffle(len(rows), func(a, b int) { rows[a], rows[b] = rows[b], rows[a] })
		shuffled := make([]models.DerivedRow, len(rows))
		copy(shuffled, rows)
		got := Run(shuffled, state, VariantTable, Columns(VariantTable, "abc"))
		assert.Equal(t, want, blocks(got.Rows))
	}
}

func TestSortRowsNullsLastBothDirections(t *testing.T) {
	col, ok := FindColumn(Columns(VariantTable, "abc"), ColToken)
	require.True(t, ok)

	rows := sampleRows(VariantTable)
	SortRows(rows, col, models.SortAscending)
	assert.Equal(t, []int64{102, 101, 100, 103, 2100}, blocks(rows))

	SortRows(rows, col, models.SortDescending)
	assert.Equal(t, []int64{103, 100, 101, 102, 2100}, blocks(rows))
}

func TestSortRowsIsStable(t *testing.T) {
	col, ok := FindColumn(Columns(VariantTable, "abc"), ColTxType)
	require.True(t, ok)

	rows := sampleRows(VariantTable)
	SortRows(rows, col, models.SortAscending)
	assert.Equal(t, []int64{100, 102, 101, 103, 2100}, blocks(rows))

	SortRows(rows, col, models.SortDescending)
	assert.Equal(t, []int64{2100, 101, 103, 100, 102}, blocks(rows))
}

func TestSortRowsByTime(t *testing.T) {
	col, ok := FindColumn(Columns(VariantTable, "abc"), ColTime)
	require.True(t, ok)

	rows := sampleRows(VariantTable)
	SortRows(rows, col, models.SortDescending)
	assert.Equal(t, []int64{103, 102, 101, 100, 2100}, blocks(rows))
}

func TestValidateFilter(t *testing.T) {
	state := models.DefaultFilterState()
	assert.NoError(t, ValidateFilter(state))

	state.Type = "swap"
	assert.Error(t, ValidateFilter(state))

	state = models.DefaultFilterState()
	state.SortDir = "up"
	assert.Error(t, ValidateFilter(state))

	state = models.DefaultFilterState()
	state.StartDate = date(2024, 5, 2)
	state.EndDate = date(2024, 5, 1)
	assert.Error(t, ValidateFilter(state))

	state = models.DefaultFilterState()
	state.RangeMin = ptr(5)
	state.RangeMax = ptr(1)
	assert.Error(t, ValidateFilter(state))

	state.RangeMax = ptr(5)
	assert.NoError(t, ValidateFilter(state))
}

func TestColumnsByVariant(t *testing.T) {
	keys := func(cols []Column) []string {
		out := []string{}
		for _, c := range cols {
			out = append(out, c.Key)
		}
		return out
	}

	table := Columns(VariantTable, "abc")
	assert.Equal(t, []string{
		ColBlock, ColTxHash, ColMaker, ColTxType, ColSwapType, ColTime,
		ColToken, ColVirtual, ColGenesisUSD, ColGenesisVirtual, ColVirtualUSD,
	}, keys(table))
	assert.Equal(t, "ABC", table[6].Header)

	detail := Columns(VariantDetail, "abc")
	assert.Equal(t, ColTxValue, detail[9].Key)
	assert.Equal(t, "TRANSACTION VALUE ($)", detail[9].Header)
	assert.Len(t, detail, 12)
}
