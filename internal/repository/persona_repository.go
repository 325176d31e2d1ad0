package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type PersonaRepository struct {
	coll *mongo.Collection
	log  *zap.SugaredLogger
}

func NewPersonaRepository(db *mongo.Database, collection string, log *zap.SugaredLogger) *PersonaRepository {
	return &PersonaRepository{coll: db.Collection(collection), log: log}
}

// GetTokenCards devuelve un card por símbolo con todos sus nombres, en el orden del registro
func (r *PersonaRepository) GetTokenCards(ctx context.Context) ([]models.TokenCard, error) {
	projection := bson.D{{Key: "symbol", Value: 1}, {Key: "name", Value: 1}, {Key: "_id", Value: 0}}
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("error al consultar el registro de tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error al leer el registro de tokens: %w", err)
	}

	cards := []models.TokenCard{}
	index := make(map[string]int)
	for _, doc := range docs {
		symbol := toString(doc["symbol"])
		if symbol == "" {
			continue
		}
		i, exists := index[symbol]
		if !exists {
			i = len(cards)
			index[symbol] = i
			cards = append(cards, models.TokenCard{Symbol: symbol, Names: []string{}})
		}
		if name := toString(doc["name"]); name != "" {
			cards[i].Names = append(cards[i].Names, name)
		}
	}

	r.log.Debugw("cards cargados", "count", len(cards))
	return cards, nil
}

// GetBySymbol busca el token en el registro. Devuelve nil si no existe.
func (r *PersonaRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Persona, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.D{{Key: "symbol", Value: strings.ToUpper(symbol)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al buscar %s en el registro: %w", symbol, err)
	}

	return &models.Persona{
		Symbol:    toString(doc["symbol"]),
		Name:      toString(doc["name"]),
		Token:     toString(doc["token"]),
		DAO:       toString(doc["dao"]),
		LP:        toString(doc["lp"]),
		Timestamp: toInt64(doc["timestamp"]),
	}, nil
}
