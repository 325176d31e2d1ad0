package models

import "time"

// Persona es un documento del registro de tokens lanzados ("New Persona")
type Persona struct {
	Symbol    string `json:"symbol" bson:"symbol"`
	Name      string `json:"name" bson:"name"`
	Token     string `json:"token" bson:"token"`
	DAO       string `json:"dao" bson:"dao"`
	LP        string `json:"lp" bson:"lp"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"` // epoch en segundos
}

// LaunchTime devuelve el momento de lanzamiento en UTC
func (p Persona) LaunchTime() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

// TokenCard agrupa todos los nombres registrados para un símbolo
type TokenCard struct {
	Symbol string   `json:"symbol"`
	Names  []string `json:"names"`
}
