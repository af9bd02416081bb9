package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the auction server. Everything has
// a demo-friendly default; a .env file or the environment overrides it.
type Config struct {
	Port          string
	BidIncrement  float64
	ClosingWindow time.Duration
	TickInterval  time.Duration
	JWTSecret     string
	JWTTTL        time.Duration
	LogLevel      string
}

// Load reads configuration from .env (if present) and the environment
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "chigona-demo-secret"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.BidIncrement, err = getFloat("BID_INCREMENT", 1.0); err != nil {
		return Config{}, err
	}
	if cfg.ClosingWindow, err = getDuration("CLOSING_WINDOW", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.TickInterval, err = getDuration("TICK_INTERVAL", time.Second); err != nil {
		return Config{}, err
	}
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
