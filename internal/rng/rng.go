// Package rng - генератор исходов попытки подъема на уровень.
package rng

import (
	"github.com/shopspring/decimal"
	"math/rand/v2"
	"sync"
	"tower_backend/internal/config"
	"tower_backend/internal/model"
)

// Generator выдает множитель и результат одной попытки
type Generator interface {
	Draw() model.Draw
}

// Random - генератор на math/rand/v2. Безопасен для конкурентного использования
type Random struct {
	mtx sync.Mutex
	rnd *rand.Rand

	successChance float64
	minMultiplier float64
	spread        float64
	min           decimal.Decimal
	max           decimal.Decimal
}

// NewRandom Создать генератор по настройкам башни. Seed 0 означает случайное зерно
func NewRandom(cfg config.TowerConfig) *Random {
	seed := cfg.Seed()
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Random{
		rnd:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		successChance: cfg.SuccessChance(),
		minMultiplier: cfg.MinMultiplier().InexactFloat64(),
		spread:        cfg.MaxMultiplier().Sub(cfg.MinMultiplier()).InexactFloat64(),
		min:           cfg.MinMultiplier(),
		max:           cfg.MaxMultiplier(),
	}
}

// Draw Множитель равномерно из [min, max] с округлением до сотых,
// успех независимо с вероятностью successChance
func (r *Random) Draw() model.Draw {
	r.mtx.Lock()
	u := r.rnd.Float64()
	p := r.rnd.Float64()
	r.mtx.Unlock()

	multiplier := decimal.NewFromFloat(r.minMultiplier + u*r.spread).Round(2)

	// Округление не должно выводить за границы отрезка
	if multiplier.LessThan(r.min) {
		multiplier = r.min
	}
	if multiplier.GreaterThan(r.max) {
		multiplier = r.max
	}

	return model.Draw{
		Multiplier: multiplier,
		Success:    p < r.successChance,
	}
}
