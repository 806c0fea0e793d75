package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration. Every field has a sensible
// default; environment variables override, and a .env file is honored when
// present.
type Config struct {
	Port            int
	BaseURL         string
	FuturesBaseURL  string
	HTTPTimeout     time.Duration
	DefaultSymbol   string
	DefaultInterval string
}

// Default returns the configuration the service starts with when nothing is
// overridden.
func Default() Config {
	return Config{
		Port:            8080,
		BaseURL:         "https://api.binance.com",
		FuturesBaseURL:  "https://fapi.binance.com",
		HTTPTimeout:     5 * time.Second,
		DefaultSymbol:   "BTCUSDT",
		DefaultInterval: "1h",
	}
}

// Load builds the configuration from the environment. A missing .env file
// is not an error; a malformed numeric variable is.
func Load() (Config, error) {
	// best effort: local dev keeps overrides in .env
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BINANCE_FUTURES_BASE_URL"); v != "" {
		cfg.FuturesBaseURL = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = timeout
	}
	if v := os.Getenv("DEFAULT_SYMBOL"); v != "" {
		cfg.DefaultSymbol = v
	}
	if v := os.Getenv("DEFAULT_INTERVAL"); v != "" {
		cfg.DefaultInterval = v
	}

	return cfg, nil
}
