package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/KirkDiggler/upgrade-sim/internal/effects"
)

// Config holds all configuration for the simulator binaries
type Config struct {
	Sim   SimConfig
	Batch BatchConfig
	Trees TreesConfig
}

// SimConfig controls a single session
type SimConfig struct {
	Seed      int64   // 0 means seed from the clock
	TickDelta float64 // seconds removed from an effect per tick
	Verbose   bool
}

// BatchConfig controls cmd/batch
type BatchConfig struct {
	Sessions int
	Ticks    int
}

// TreesConfig locates skill tree definitions
type TreesConfig struct {
	File string // optional YAML file; empty uses the built-in trees
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Sim: SimConfig{
			Seed:      getEnvAsInt64OrDefault("SIM_SEED", 0),
			TickDelta: getEnvAsFloatOrDefault("SIM_TICK_DELTA", effects.DefaultTickDelta),
			Verbose:   getEnvAsBoolOrDefault("SIM_VERBOSE", false),
		},
		Batch: BatchConfig{
			Sessions: getEnvAsIntOrDefault("SIM_SESSIONS", 4),
			Ticks:    getEnvAsIntOrDefault("SIM_TICKS", 20),
		},
		Trees: TreesConfig{
			File: os.Getenv("SIM_TREES_FILE"),
		},
	}

	if cfg.Sim.TickDelta <= 0 {
		return nil, fmt.Errorf("SIM_TICK_DELTA must be positive, got %v", cfg.Sim.TickDelta)
	}
	if cfg.Batch.Sessions < 1 {
		return nil, fmt.Errorf("SIM_SESSIONS must be at least 1, got %d", cfg.Batch.Sessions)
	}
	if cfg.Batch.Ticks < 0 {
		return nil, fmt.Errorf("SIM_TICKS cannot be negative, got %d", cfg.Batch.Ticks)
	}

	return cfg, nil
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
