package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrMissingToken se devuelve cuando no se indicó el parámetro token
	ErrMissingToken = errors.New("no token specified")
	// ErrInvalidToken se devuelve cuando el símbolo no puede formar un nombre de colección
	ErrInvalidToken = errors.New("invalid token")
)

var tokenPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// FieldRole es el rol lógico de una columna de montos
type FieldRole string

const (
	RoleTokenIn    FieldRole = "token_in"
	RoleTokenOut   FieldRole = "token_out"
	RoleCounterIn  FieldRole = "counter_in"
	RoleCounterOut FieldRole = "counter_out"
)

// UnknownFieldError indica que ningún documento trae el campo asignado a un rol
type UnknownFieldError struct {
	Role  FieldRole
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q for role %s", e.Field, e.Role)
}

// Campos fijos de la colección {token}_swap
const (
	fieldBlockNumber         = "blockNumber"
	fieldTxHash              = "txHash"
	fieldMaker               = "maker"
	fieldSwapType            = "swapType"
	fieldLabel               = "label"
	fieldTimestampReadable   = "timestampReadable"
	fieldGenesisUSDPrice     = "genesis_usdc_price"
	fieldGenesisVirtualPrice = "genesis_virtual_price"
	fieldVirtualUSDPrice     = "virtual_usdc_price"
)

// FieldMap asigna cada rol lógico a su campo físico para un token
type FieldMap struct {
	Symbol     string // en minúsculas, tal como se usa en el nombre de la colección
	TokenIn    string
	TokenOut   string
	CounterIn  string
	CounterOut string
}

// NormalizeToken aplica la misma normalización que el parámetro de la página
func NormalizeToken(raw string) (string, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", ErrMissingToken
	}
	if !tokenPattern.MatchString(token) {
		return "", fmt.Errorf("%w: %q", ErrInvalidToken, raw)
	}
	return token, nil
}

// NewFieldMap construye el mapeo de campos para un token y el activo de contraparte
func NewFieldMap(token, counterAsset string) (FieldMap, error) {
	symbol, err := NormalizeToken(token)
	if err != nil {
		return FieldMap{}, err
	}
	if counterAsset == "" {
		return FieldMap{}, errors.New("counter asset is empty")
	}
	upper := strings.ToUpper(symbol)
	return FieldMap{
		Symbol:     symbol,
		TokenIn:    upper + "_IN",
		TokenOut:   upper + "_OUT",
		CounterIn:  counterAsset + "_IN",
		CounterOut: counterAsset + "_OUT",
	}, nil
}

// Collection devuelve el nombre de la colección de swaps del token
func (f FieldMap) Collection() string {
	return f.Symbol + "_swap"
}

// Upper devuelve el símbolo en mayúsculas (nombre de columna en la tabla)
func (f FieldMap) Upper() string {
	return strings.ToUpper(f.Symbol)
}

type roleField struct {
	role  FieldRole
	field string
}

func (f FieldMap) roles() []roleField {
	return []roleField{
		{RoleTokenIn, f.TokenIn},
		{RoleTokenOut, f.TokenOut},
		{RoleCounterIn, f.CounterIn},
		{RoleCounterOut, f.CounterOut},
	}
}

// Projection devuelve la proyección usada en el find de la colección
func (f FieldMap) Projection() bson.D {
	projection := bson.D{
		{Key: fieldBlockNumber, Value: 1},
		{Key: fieldTxHash, Value: 1},
		{Key: fieldMaker, Value: 1},
		{Key: fieldSwapType, Value: 1},
		{Key: fieldLabel, Value: 1},
		{Key: fieldTimestampReadable, Value: 1},
	}
	for _, rf := range f.roles() {
		projection = append(projection, bson.E{Key: rf.field, Value: 1})
	}
	return append(projection,
		bson.E{Key: fieldGenesisUSDPrice, Value: 1},
		bson.E{Key: fieldGenesisVirtualPrice, Value: 1},
		bson.E{Key: fieldVirtualUSDPrice, Value: 1},
	)
}

// Validate falla si algún rol no aparece en ningún documento.
// Un resultado vacío no se valida.
func (f FieldMap) Validate(docs []bson.M) error {
	if len(docs) == 0 {
		return nil
	}
	for _, rf := range f.roles() {
		found := false
		for _, doc := range docs {
			if _, ok := doc[rf.field]; ok {
				found = true
				break
			}
		}
		if !found {
			return &UnknownFieldError{Role: rf.role, Field: rf.field}
		}
	}
	return nil
}
