package config

import (
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"log/slog"
	"time"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// TowerConfig - настройки башни из config.yaml
type TowerConfig interface {
	MaxLevels() int
	SuccessChance() float64
	MinMultiplier() decimal.Decimal
	MaxMultiplier() decimal.Decimal
	MinBet() decimal.Decimal
	Seed() uint64
	StatsWindow() int
}

type LedgerConfig interface {
	PageSize() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type KafkaConfig interface {
	Brokers() []string
	Topic() string
	Enabled() bool
}

type StorageConfig interface {
	// Driver - "postgres" или "memory"
	Driver() string
}

type LogConfig interface {
	Level() slog.Level
}
