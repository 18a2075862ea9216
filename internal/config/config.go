package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/edp1096/lilacs/internal/consts"
)

// Config holds solver and CLI settings.
type Config struct {
	RelTol    float64    // Relative tolerance for verification
	AbsTol    float64    // Absolute tolerance for verification
	MaxPasses int        // Pass limit per network, 0 for automatic
	Verify    bool       // Verify every solved network
	LogLevel  slog.Level // Minimum log level
	NoColor   bool       // Plain log output
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		RelTol:   consts.RELTOL,
		AbsTol:   consts.ABSTOL,
		LogLevel: slog.LevelWarn,
	}
}

// Load reads LILACS_* environment variables on top of the defaults.
func Load() (*Config, error) {
	cfg := Default()
	var err error

	if cfg.RelTol, err = getEnvFloat("LILACS_REL_TOL", cfg.RelTol); err != nil {
		return nil, err
	}
	if cfg.AbsTol, err = getEnvFloat("LILACS_ABS_TOL", cfg.AbsTol); err != nil {
		return nil, err
	}
	if cfg.MaxPasses, err = getEnvInt("LILACS_MAX_PASSES", cfg.MaxPasses); err != nil {
		return nil, err
	}
	cfg.Verify = getEnvBool("LILACS_VERIFY", cfg.Verify)
	cfg.NoColor = getEnvBool("LILACS_NO_COLOR", cfg.NoColor) || os.Getenv("NO_COLOR") != ""
	if level := os.Getenv("LILACS_LOG_LEVEL"); level != "" {
		if cfg.LogLevel, err = ParseLevel(level); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the solver cannot use.
func (c *Config) Validate() error {
	if c.RelTol < 0 || c.AbsTol < 0 {
		return fmt.Errorf("tolerances must not be negative (rel=%g, abs=%g)", c.RelTol, c.AbsTol)
	}
	if c.MaxPasses < 0 {
		return fmt.Errorf("max passes must not be negative: %d", c.MaxPasses)
	}
	return nil
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
