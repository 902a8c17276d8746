package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             int      `env:"PORT" envDefault:"8080"`
	Dsn              string   `env:"DATABASE_URL"`
	GoogleMapsAPIKey string   `env:"GOOGLE_MAPS_API_KEY"`
	Environment      string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string   `env:"LOG_LEVEL" envDefault:"info"`
	StrictValidation bool     `env:"STRICT_VALIDATION" envDefault:"false"`
	RateLimitRPS     float64  `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst   int      `env:"RATE_LIMIT_BURST" envDefault:"10"`
	MetricsUser      string   `env:"METRICS_USER"`
	MetricsPass      string   `env:"METRICS_PASS"`
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file: %v", loadErr)
	}

	cfg, parseErr := Parse(env.Options{})
	if parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return cfg
}

// Parse reads the configuration using opts. Tests pass an explicit Environment map.
func Parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}

// RequireDBTLS reports whether connections to the database must use TLS.
// A hosted database is assumed whenever a connection string is provided.
func (c *Config) RequireDBTLS() bool {
	return strings.TrimSpace(c.Dsn) != ""
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

func (c *Config) MetricsAuthEnabled() bool {
	return c.MetricsUser != "" || c.MetricsPass != ""
}
