package repository

import (
	"math"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToNullFloat(t *testing.T) {
	dec, err := primitive.ParseDecimal128("12.5")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   interface{}
		want models.NullFloat
	}{
		{"nil", nil, models.NullFloat{}},
		{"int32", int32(7), models.Float(7)},
		{"int64", int64(1 << 40), models.Float(1 << 40)},
		{"double", 0.25, models.Float(0.25)},
		{"decimal128", dec, models.Float(12.5)},
		{"numeric string", "3.5", models.Float(3.5)},
		{"text", "n/a", models.NullFloat{}},
		{"bool", true, models.NullFloat{}},
		{"nan string", "NaN", models.NullFloat{}},
		{"inf string", "Inf", models.NullFloat{}},
		{"nan double", math.NaN(), models.NullFloat{}},
		{"inf double", math.Inf(1), models.NullFloat{}},
		{"decimal128 nan", primitive.NewDecimal128(0x7c00000000000000, 0), models.NullFloat{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toNullFloat(tt.in))
		})
	}
}

func TestToInt64(t *testing.T) {
	dec, err := primitive.ParseDecimal128("19876543")
	require.NoError(t, err)

	assert.Equal(t, int64(19876543), toInt64(dec))
	assert.Equal(t, int64(42), toInt64(int32(42)))
	assert.Equal(t, int64(42), toInt64(42.0))
	assert.Equal(t, int64(0), toInt64(nil))
}

func TestToString(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "", toString(nil))
	assert.Equal(t, "0xabc", toString("0xabc"))
	assert.Equal(t, "2024-05-01 10:00:00", toString(primitive.NewDateTimeFromTime(ts)))
	assert.Equal(t, "2024-05-01 10:00:00", toString(ts))
	assert.Equal(t, "12", toString(int32(12)))
}

func TestDecodeSwap(t *testing.T) {
	fields, err := NewFieldMap("luna", "Virtual")
	require.NoError(t, err)

	rec := decodeSwap(bson.M{
		"blockNumber":        int64(123),
		"txHash":             "0xhash",
		"maker":              "0xmaker",
		"swapType":           "buy",
		"label":              "Dev",
		"timestampReadable":  "2024-05-01 10:00:00",
		"LUNA_OUT":           int32(5),
		"Virtual_IN":         1.5,
		"genesis_usdc_price": "0.01",
	}, fields)

	assert.Equal(t, int64(123), rec.BlockNumber)
	assert.Equal(t, "0xhash", rec.TxHash)
	assert.Equal(t, models.SwapBuy, rec.SwapType)
	assert.Equal(t, "Dev", rec.Label)
	assert.Equal(t, models.Float(5), rec.TokenOut)
	assert.Equal(t, models.Float(1.5), rec.CounterIn)
	assert.False(t, rec.TokenIn.Valid)
	assert.False(t, rec.CounterOut.Valid)
	assert.Equal(t, models.Float(0.01), rec.GenesisUSDPrice)
	assert.False(t, rec.VirtualUSDPrice.Valid)
}
