package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port            string   `env:"PORT" envDefault:"8080"`
	DBPath          string   `env:"DB_PATH" envDefault:"agro.db"`
	DBLogSQL        bool     `env:"DB_LOG_SQL" envDefault:"false"`
	APIKey          string   `env:"API_KEY"`
	RequireAPIKey   bool     `env:"REQUIRE_API_KEY" envDefault:"false"`
	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	DefaultPageSize int      `env:"DEFAULT_PAGE_SIZE" envDefault:"100"`
	MaxPageSize     int      `env:"MAX_PAGE_SIZE" envDefault:"500"`
}

// Load reads an optional .env file and then the process environment.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file loaded: %v", err)
	}

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RequireAPIKey && cfg.APIKey == "" {
		return AppConfig{}, fmt.Errorf("REQUIRE_API_KEY is set but API_KEY is empty")
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 100
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	log.Printf("[cfg] port=%s db=%s api_key_required=%t cors=%v", cfg.Port, cfg.DBPath, cfg.RequireAPIKey, cfg.CORSOrigins)
	return cfg, nil
}
