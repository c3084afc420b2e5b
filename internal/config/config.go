package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	DatabaseName    string        `envconfig:"DATABASE_NAME" default:"provided"`
	Port            string        `envconfig:"PORT" default:"8000"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	GinMode         string        `envconfig:"GIN_MODE" default:"release"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"2m"`
	CartTTL         time.Duration `envconfig:"CART_TTL" default:"720h"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`
	SeedOnStart     bool          `envconfig:"SEED_ON_START" default:"true"`

	// Para el diagnóstico de /test
	DatabaseURLSet  bool `ignored:"true"`
	DatabaseNameSet bool `ignored:"true"`
}

// LoadConfig lee .env (solo si existe) y luego las variables de entorno
func LoadConfig() (*Config, error) {
	// En producción no hay .env y se usan las variables del sistema
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.WithError(err).Warn("⚠️ Error loading .env file")
		} else {
			log.Debug("✅ .env file loaded successfully")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	cfg.DatabaseURLSet = isSet("DATABASE_URL")
	cfg.DatabaseNameSet = isSet("DATABASE_NAME")

	return &cfg, nil
}

// AllowAllOrigins indica si CORS debe aceptar cualquier origen
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return len(c.CORSOrigins) == 0
}

func isSet(key string) bool {
	value, ok := os.LookupEnv(key)
	return ok && value != ""
}
