package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mr1hm/go-evac-planner/internal/evac"
)

type Config struct {
	Server    ServerConfig
	RateLimit RateLimitConfig
	Planner   PlannerConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host             string
	Port             int
	MaxGridCells     int
	MaxResourceUnits int
}

type RateLimitConfig struct {
	RPS   int
	Burst int
}

type PlannerConfig struct {
	Weights          evac.Weights
	Percentile       float64
	PeoplePerVehicle float64
	AllocationMode   evac.AllocationMode
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	weights, err := getEnvWeights("THREAT_WEIGHTS", evac.DefaultWeights)
	if err != nil {
		return nil, err
	}
	mode, err := evac.ParseAllocationMode(getEnv("ALLOCATION_MODE", string(evac.AllocationCorrected)))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:             getEnv("SERVER_HOST", "localhost"),
			Port:             getEnvInt("SERVER_PORT", 8080),
			MaxGridCells:     getEnvInt("MAX_GRID_CELLS", 250_000),
			MaxResourceUnits: getEnvInt("MAX_RESOURCE_UNITS", 10_000),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvInt("RATE_LIMIT_RPS", 5),
			Burst: getEnvInt("RATE_LIMIT_BURST", 5),
		},
		Planner: PlannerConfig{
			Weights:          weights,
			Percentile:       getEnvFloat("AFFECTED_PERCENTILE", evac.DefaultPercentile),
			PeoplePerVehicle: getEnvFloat("PEOPLE_PER_VEHICLE", evac.DefaultPeoplePerVehicle),
			AllocationMode:   mode,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Options converts the planner settings into evac options.
func (c *Config) Options() []evac.Option {
	return []evac.Option{
		evac.WithWeights(c.Planner.Weights),
		evac.WithPercentile(c.Planner.Percentile),
		evac.WithPeoplePerVehicle(c.Planner.PeoplePerVehicle),
		evac.WithAllocationMode(c.Planner.AllocationMode),
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxGridCells < 1 {
		return fmt.Errorf("max grid cells must be positive: %d", c.Server.MaxGridCells)
	}
	if c.Server.MaxResourceUnits < 1 {
		return fmt.Errorf("max resource units must be positive: %d", c.Server.MaxResourceUnits)
	}
	if c.RateLimit.RPS < 1 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit rps and burst must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Planner.Percentile <= 0 || c.Planner.Percentile >= 100 {
		return fmt.Errorf("affected percentile must be in (0, 100): %v", c.Planner.Percentile)
	}
	if c.Planner.PeoplePerVehicle <= 0 {
		return fmt.Errorf("people per vehicle must be positive: %v", c.Planner.PeoplePerVehicle)
	}
	sum := 0.0
	for _, w := range c.Planner.Weights {
		if w < 0 {
			return fmt.Errorf("threat weights must be non-negative: %v", c.Planner.Weights)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("threat weights must have a positive sum")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvWeights parses four comma-separated floats. Unlike the other
// helpers a malformed value is an error, not a silent fallback.
func getEnvWeights(key string, fallback evac.Weights) (evac.Weights, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parts := strings.Split(val, ",")
	if len(parts) != len(fallback) {
		return fallback, fmt.Errorf("%s needs %d comma-separated values, got %d", key, len(fallback), len(parts))
	}
	var w evac.Weights
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fallback, fmt.Errorf("%s: invalid weight %q: %w", key, p, err)
		}
		w[i] = f
	}
	return w, nil
}
