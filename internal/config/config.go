package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration for the server and the terminal client.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	Log             LogConfig
	Metrics         MetricsConfig
	Storage         StorageConfig
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads configuration from environment variables (and an optional .env
// file) with sensible defaults.
func Load() Config {
	v := newViper()
	return Config{
		Port:            envOrDefault(v, envPort, defaultPort),
		ShutdownTimeout: durationEnvOrDefault(v, envShutdown, defaultShutdown),
		Log: LogConfig{
			Level:  envOrDefault(v, envLogLevel, defaultLogLevel),
			Format: envOrDefault(v, envLogFormat, defaultLogFormat),
			File:   envOrDefault(v, envLogFile, ""),
		},
		Metrics: loadMetrics(v),
		Storage: loadStorage(v),
	}
}

// Validate reports configuration that cannot be used to start.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	return c.Storage.Validate()
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// MetricsAddr returns the metrics listen address.
func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%s", strings.TrimPrefix(c.Metrics.Port, ":"))
}
