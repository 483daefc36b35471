package env

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"os"
	"tower_backend/internal/config"
)

const (
	defaultMaxLevels     = 10
	defaultSuccessChance = 0.7
	defaultMinMultiplier = 1.10
	defaultMaxMultiplier = 2.00
	defaultMinBet        = 1
	defaultStatsWindow   = 500
	defaultPageSize      = 50
)

// fileConfig - структура config.yaml
type fileConfig struct {
	Tower struct {
		MaxLevels     int      `yaml:"max_levels"`
		SuccessChance *float64 `yaml:"success_chance"`
		MinMultiplier float64  `yaml:"min_multiplier"`
		MaxMultiplier float64  `yaml:"max_multiplier"`
		MinBet        float64  `yaml:"min_bet"`
		Seed          uint64   `yaml:"seed"`
		StatsWindow   int      `yaml:"stats_window"`
	} `yaml:"tower"`
	Ledger struct {
		PageSize int `yaml:"page_size"`
	} `yaml:"ledger"`
}

type towerConfig struct {
	maxLevels     int
	successChance float64
	minMultiplier decimal.Decimal
	maxMultiplier decimal.Decimal
	minBet        decimal.Decimal
	seed          uint64
	statsWindow   int
}

type ledgerConfig struct {
	pageSize int
}

func readFileConfig(path string) (*fileConfig, error) {
	var cfg fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		// Без файла работаем на значениях по умолчанию
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// NewTowerConfigFromYAML читает секцию tower, незаданные поля берутся по умолчанию
func NewTowerConfigFromYAML(path string) (config.TowerConfig, error) {
	fc, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}

	cfg, err := newTowerConfig(fc)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newTowerConfig(fc *fileConfig) (*towerConfig, error) {
	t := fc.Tower
	cfg := &towerConfig{
		maxLevels:     defaultMaxLevels,
		successChance: defaultSuccessChance,
		minMultiplier: decimal.NewFromFloat(defaultMinMultiplier),
		maxMultiplier: decimal.NewFromFloat(defaultMaxMultiplier),
		minBet:        decimal.NewFromInt(defaultMinBet),
		seed:          t.Seed,
		statsWindow:   defaultStatsWindow,
	}

	if t.MaxLevels != 0 {
		cfg.maxLevels = t.MaxLevels
	}
	if t.SuccessChance != nil {
		cfg.successChance = *t.SuccessChance
	}
	if t.MinMultiplier != 0 {
		cfg.minMultiplier = decimal.NewFromFloat(t.MinMultiplier).Round(2)
	}
	if t.MaxMultiplier != 0 {
		cfg.maxMultiplier = decimal.NewFromFloat(t.MaxMultiplier).Round(2)
	}
	if t.MinBet != 0 {
		cfg.minBet = decimal.NewFromFloat(t.MinBet).Round(2)
	}
	if t.StatsWindow != 0 {
		cfg.statsWindow = t.StatsWindow
	}

	// Валидация
	if cfg.maxLevels <= 0 {
		return nil, errors.New("tower.max_levels must be positive")
	}
	if cfg.successChance < 0 || cfg.successChance > 1 {
		return nil, errors.New("tower.success_chance must be within [0, 1]")
	}
	if cfg.minMultiplier.LessThan(decimal.NewFromInt(1)) {
		return nil, errors.New("tower.min_multiplier must be at least 1")
	}
	if cfg.maxMultiplier.LessThan(cfg.minMultiplier) {
		return nil, errors.New("tower.max_multiplier must not be less than min_multiplier")
	}
	if !cfg.minBet.IsPositive() {
		return nil, errors.New("tower.min_bet must be positive")
	}
	if cfg.statsWindow <= 0 {
		return nil, errors.New("tower.stats_window must be positive")
	}

	return cfg, nil
}

func (c *towerConfig) MaxLevels() int                 { return c.maxLevels }
func (c *towerConfig) SuccessChance() float64         { return c.successChance }
func (c *towerConfig) MinMultiplier() decimal.Decimal { return c.minMultiplier }
func (c *towerConfig) MaxMultiplier() decimal.Decimal { return c.maxMultiplier }
func (c *towerConfig) MinBet() decimal.Decimal        { return c.minBet }
func (c *towerConfig) Seed() uint64                   { return c.seed }
func (c *towerConfig) StatsWindow() int               { return c.statsWindow }

// NewLedgerConfigFromYAML читает секцию ledger
func NewLedgerConfigFromYAML(path string) (config.LedgerConfig, error) {
	fc, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}

	cfg := &ledgerConfig{pageSize: defaultPageSize}
	if fc.Ledger.PageSize != 0 {
		cfg.pageSize = fc.Ledger.PageSize
	}
	if cfg.pageSize <= 0 {
		return nil, errors.New("ledger.page_size must be positive")
	}
	return cfg, nil
}

func (c *ledgerConfig) PageSize() int { return c.pageSize }
