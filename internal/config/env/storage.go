package env

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"tower_backend/internal/config"
)

const (
	storageEnvName  = "STORAGE"
	logLevelEnvName = "LOG_LEVEL"

	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type storageConfig struct {
	driver string
}

func NewStorageConfig() (config.StorageConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv(storageEnvName)))
	switch driver {
	case "":
		driver = StoragePostgres
	case StoragePostgres, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage %q", driver)
	}

	return &storageConfig{driver: driver}, nil
}

func (cfg *storageConfig) Driver() string {
	return cfg.driver
}

type logConfig struct {
	level slog.Level
}

func NewLogConfig() (config.LogConfig, error) {
	var level slog.Level
	raw := strings.TrimSpace(os.Getenv(logLevelEnvName))
	if raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	return &logConfig{level: level}, nil
}

func (cfg *logConfig) Level() slog.Level {
	return cfg.level
}
