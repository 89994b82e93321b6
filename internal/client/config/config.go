package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config configures the terminal client.
type Config struct {
	APIURL         string        `env:"API_URL,         default=http://localhost:5000/api"`
	TokenDB        string        `env:"TOKEN_DB,        default=devconnector.db"`
	AlertTTL       time.Duration `env:"ALERT_TTL,       default=5s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=10s"`
	LogFile        string        `env:"LOG_FILE"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(context.Background(), envconfig.OsLookuper())
}

func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		return nil, errors.New("API_URL must be set")
	}
	if cfg.AlertTTL <= 0 || cfg.RequestTimeout <= 0 {
		return nil, errors.New("ALERT_TTL and REQUEST_TIMEOUT must be positive")
	}
	return &cfg, nil
}
