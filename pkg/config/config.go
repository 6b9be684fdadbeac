// Package config loads process-start configuration for the CLI and the
// application-services wiring. The planning core (pkg/planner) never
// imports this package; it is read once, immutably, by cmd/coffeeplan,
// which passes its values into pkg/application/services.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the orchestrator and CLI need at startup,
// grounded on douglaslinsmeyer-m3-manufacturing-planning-toolbox's
// internal/config.Config (plain struct, os.Getenv-with-default helpers,
// one Load()).
type Config struct {
	// SolverTimeLimit bounds a single MIP solve's wall clock.
	SolverTimeLimit time.Duration
	// MIPGap is passed through to solver.Options.MIPGap. The
	// branch-and-bound loop does not stop early on it; GapExceeded is set
	// only when the time limit is reached with an incumbent.
	MIPGap float64
	// IntegerTolerance is how far a binary variable's primal value may
	// sit from {0,1} before rounding it is treated as a solver error.
	IntegerTolerance float64
	// MaxConcurrentPlans sizes PlanningOrchestrator's semaphore.
	MaxConcurrentPlans int64

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then environment variables into a
// Config, applying defaults for anything unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables only")
	}

	cfg := &Config{
		SolverTimeLimit:    getEnvAsDuration("SOLVER_TIME_LIMIT", 30*time.Second),
		MIPGap:             getEnvAsFloat("SOLVER_MIP_GAP", 1e-4),
		IntegerTolerance:   getEnvAsFloat("SOLVER_INTEGER_TOLERANCE", 1e-6),
		MaxConcurrentPlans: getEnvAsInt64("MAX_CONCURRENT_PLANS", 4),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SolverTimeLimit <= 0 {
		return fmt.Errorf("SOLVER_TIME_LIMIT must be positive, got %s", c.SolverTimeLimit)
	}
	if c.MaxConcurrentPlans <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_PLANS must be positive, got %d", c.MaxConcurrentPlans)
	}
	return nil
}

// NewLogger builds the slog.Logger described by LogFormat/LogLevel:
// JSON handler in production ("json"), text handler otherwise. No
// third-party structured-logging library appears anywhere in the
// retrieved corpus's full repositories, so log/slog is the ambient
// logger for this module too.
func (c *Config) NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
