package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// timestampLayout se usa cuando timestampReadable viene como fecha BSON
const timestampLayout = "2006-01-02 15:04:05"

type SwapRepository struct {
	db           *mongo.Database
	counterAsset string
	log          *zap.SugaredLogger
}

func NewSwapRepository(db *mongo.Database, counterAsset string, log *zap.SugaredLogger) *SwapRepository {
	return &SwapRepository{db: db, counterAsset: counterAsset, log: log}
}

// LoadSwaps trae todos los swaps de un token con la proyección de columnas del dashboard
func (r *SwapRepository) LoadSwaps(ctx context.Context, token string) ([]models.SwapRecord, FieldMap, error) {
	fields, err := NewFieldMap(token, r.counterAsset)
	if err != nil {
		return nil, FieldMap{}, err
	}

	cursor, err := r.db.Collection(fields.Collection()).Find(ctx, bson.D{},
		options.Find().SetProjection(fields.Projection()))
	if err != nil {
		return nil, fields, fmt.Errorf("error al consultar %s: %w", fields.Collection(), err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fields, fmt.Errorf("error al leer %s: %w", fields.Collection(), err)
	}

	// Validar el mapeo antes de decodificar para no propagar nulos en silencio
	if err := fields.Validate(docs); err != nil {
		return nil, fields, err
	}

	records := make([]models.SwapRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, decodeSwap(doc, fields))
	}

	r.log.Debugw("swaps cargados", "collection", fields.Collection(), "count", len(records))
	return records, fields, nil
}

func decodeSwap(doc bson.M, fields FieldMap) models.SwapRecord {
	return models.SwapRecord{
		BlockNumber:         toInt64(doc[fieldBlockNumber]),
		TxHash:              toString(doc[fieldTxHash]),
		Maker:               toString(doc[fieldMaker]),
		SwapType:            models.SwapType(toString(doc[fieldSwapType])),
		Label:               toString(doc[fieldLabel]),
		TimestampReadable:   toString(doc[fieldTimestampReadable]),
		TokenIn:             toNullFloat(doc[fields.TokenIn]),
		TokenOut:            toNullFloat(doc[fields.TokenOut]),
		CounterIn:           toNullFloat(doc[fields.CounterIn]),
		CounterOut:          toNullFloat(doc[fields.CounterOut]),
		GenesisUSDPrice:     toNullFloat(doc[fieldGenesisUSDPrice]),
		GenesisVirtualPrice: toNullFloat(doc[fieldGenesisVirtualPrice]),
		VirtualUSDPrice:     toNullFloat(doc[fieldVirtualUSDPrice]),
	}
}

// toNullFloat convierte cualquier numérico BSON (int32, int64, double, Decimal128
// o string numérico) a NullFloat. Ausente, null, no numérico, NaN o infinito queda como nulo.
func toNullFloat(v interface{}) models.NullFloat {
	switch val := v.(type) {
	case nil:
		return models.NullFloat{}
	case primitive.Decimal128:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return models.NullFloat{}
		}
		return models.Finite(d.InexactFloat64())
	case bool:
		return models.NullFloat{}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return models.NullFloat{}
	}
	return models.Finite(f)
}

func toInt64(v interface{}) int64 {
	if d, ok := v.(primitive.Decimal128); ok {
		n, err := decimal.NewFromString(d.String())
		if err != nil {
			return 0
		}
		return n.IntPart()
	}
	return cast.ToInt64(v)
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case primitive.DateTime:
		return val.Time().UTC().Format(timestampLayout)
	case time.Time:
		return val.UTC().Format(timestampLayout)
	}
	return cast.ToString(v)
}
