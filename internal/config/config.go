// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	CalcTimeout        time.Duration
	DefaultResolution  int
	MaxResolution      int
	QuadNodes          int
	GraphWidthInches   float64
	GraphHeightInches  float64
	CacheTTL           time.Duration
	CacheMaxEntries    int
	RedisAddr          string
	RateLimitPerMinute int
	MonitorHistory     int
	ExemplosFile       string
}

// Default mirrors the settings the service ships with.
func Default() *Config {
	return &Config{
		Port:               "8000",
		CalcTimeout:        30 * time.Second,
		DefaultResolution:  400,
		MaxResolution:      1000,
		QuadNodes:          200,
		GraphWidthInches:   10,
		GraphHeightInches:  6,
		CacheTTL:           time.Hour,
		CacheMaxEntries:    1000,
		RedisAddr:          "",
		RateLimitPerMinute: 100,
		MonitorHistory:     1000,
		ExemplosFile:       "",
	}
}

// Load overlays environment variables on the defaults.
func Load() (*Config, error) {
	cfg := Default()
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.ExemplosFile = getEnvOrDefault("EXEMPLOS_FILE", cfg.ExemplosFile)

	var err error
	if cfg.CalcTimeout, err = envSeconds("CALC_TIMEOUT_SECONDS", cfg.CalcTimeout); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = envSeconds("CACHE_TTL_SECONDS", cfg.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.DefaultResolution, err = envInt("DEFAULT_RESOLUTION", cfg.DefaultResolution); err != nil {
		return nil, err
	}
	if cfg.MaxResolution, err = envInt("MAX_RESOLUTION", cfg.MaxResolution); err != nil {
		return nil, err
	}
	if cfg.QuadNodes, err = envInt("QUAD_NODES", cfg.QuadNodes); err != nil {
		return nil, err
	}
	if cfg.CacheMaxEntries, err = envInt("CACHE_MAX_ENTRIES", cfg.CacheMaxEntries); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = envInt("RATE_LIMIT_RPM", cfg.RateLimitPerMinute); err != nil {
		return nil, err
	}
	if cfg.MonitorHistory, err = envInt("MONITOR_HISTORY", cfg.MonitorHistory); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}

func envSeconds(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return time.Duration(n) * time.Second, nil
}
