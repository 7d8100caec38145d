package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"goqval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Summary SummaryConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// SummaryConfig holds process-wide summarization defaults. Per-request
// values always win; these only fill in what a caller leaves unset.
type SummaryConfig struct {
	Digits     int
	Thresholds []float64 // nil means the library defaults
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8080"),
		},
		Summary: SummaryConfig{
			Digits: 0,
		},
	}

	if raw := os.Getenv("SUMMARY_DIGITS"); raw != "" {
		digits, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrap(err, "SUMMARY_DIGITS must be an integer")
		}
		if digits <= 0 {
			return nil, errors.ConfigInvalid("SUMMARY_DIGITS must be positive")
		}
		cfg.Summary.Digits = digits
	}

	if raw := os.Getenv("SUMMARY_THRESHOLDS"); raw != "" {
		thresholds, err := parseThresholds(raw)
		if err != nil {
			return nil, errors.Wrap(err, "SUMMARY_THRESHOLDS is malformed")
		}
		cfg.Summary.Thresholds = thresholds
	}

	return cfg, nil
}

// parseThresholds parses a comma-separated list of finite floats
func parseThresholds(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	thresholds := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.ConfigInvalid("thresholds must be finite")
		}
		thresholds = append(thresholds, v)
	}
	return thresholds, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
