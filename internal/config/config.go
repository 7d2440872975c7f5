package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string        `envconfig:"APP_PORT" default:"8080"`
	Env            string        `envconfig:"APP_ENV" default:"dev"`
	DatabaseDriver string        `envconfig:"DATABASE_DRIVER" default:"sqlite3"`
	DatabaseDSN    string        `envconfig:"DATABASE_DSN" default:"parley.db"`
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"30m"`
	RateLimitRPS   float64       `envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int           `envconfig:"RATE_LIMIT_BURST" default:"40"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
