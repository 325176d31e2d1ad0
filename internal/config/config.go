package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contiene toda la configuración de la aplicación
type Config struct {
	Port     string `env:"PORT"      envDefault:"8080"`
	Env      string `env:"APP_ENV"   envDefault:"local"` // local | dev | prod
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mongo (el nombre MongoLink se mantiene por compatibilidad con el .env desplegado)
	MongoURI            string        `env:"MongoLink,required"`
	MongoDatabase       string        `env:"MONGO_DATABASE"        envDefault:"virtualgenesis"`
	RegistryCollection  string        `env:"REGISTRY_COLLECTION"   envDefault:"New Persona"`
	MongoQueryTimeout   time.Duration `env:"MONGO_QUERY_TIMEOUT"   envDefault:"30s"`
	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`

	// Dashboard
	CounterAsset   string `env:"COUNTER_ASSET"    envDefault:"Virtual"`
	ExplorerTxURL  string `env:"EXPLORER_TX_URL"  envDefault:"https://basescan.org/tx/"`
	MakerPrefixLen int    `env:"MAKER_PREFIX_LEN" envDefault:"10"`
	CardColumns    int    `env:"CARD_COLUMNS"     envDefault:"5"`

	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load carga el .env si existe y parsea las variables de entorno.
// Que no exista el .env no es un error.
func Load(files ...string) (*Config, error) {
	loadErr := godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		if loadErr != nil {
			return nil, fmt.Errorf("error al parsear la configuración (sin .env: %v): %w", loadErr, err)
		}
		return nil, fmt.Errorf("error al parsear la configuración: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa los valores que env no puede validar por tag
func (c *Config) Validate() error {
	if c.MakerPrefixLen <= 0 {
		return fmt.Errorf("MAKER_PREFIX_LEN debe ser mayor a 0, se recibió %d", c.MakerPrefixLen)
	}
	if c.CardColumns <= 0 {
		return fmt.Errorf("CARD_COLUMNS debe ser mayor a 0, se recibió %d", c.CardColumns)
	}
	if c.CounterAsset == "" {
		return fmt.Errorf("COUNTER_ASSET no puede estar vacío")
	}
	return nil
}

// Addr devuelve la dirección de escucha del servidor
func (c *Config) Addr() string {
	return ":" + c.Port
}
