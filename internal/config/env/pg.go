package env

import (
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"os"
	"strconv"
	"tower_backend/internal/config"
)

const (
	dsnName         = "PG_DSN"
	maxConnsEnvName = "PG_MAX_CONNS"

	defaultMaxConns = 10
)

type pgConfig struct {
	dsn      string
	maxConns int32
}

// NewPGConfig читает DSN и размер пула. DSN проверяется сразу, а не при первом подключении
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}
	if _, err := pgxpool.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", dsnName, err)
	}

	cfg := &pgConfig{
		dsn:      dsn,
		maxConns: defaultMaxConns,
	}
	if raw := os.Getenv(maxConnsEnvName); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", maxConnsEnvName)
		}
		cfg.maxConns = int32(n)
	}

	return cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) MaxConns() int32 {
	return cfg.maxConns
}
