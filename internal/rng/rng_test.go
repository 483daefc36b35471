package rng

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"testing"
)

type towerCfg struct {
	seed   uint64
	chance float64
}

func (c towerCfg) MaxLevels() int                 { return 10 }
func (c towerCfg) SuccessChance() float64         { return c.chance }
func (c towerCfg) MinMultiplier() decimal.Decimal { return decimal.RequireFromString("1.10") }
func (c towerCfg) MaxMultiplier() decimal.Decimal { return decimal.RequireFromString("2.00") }
func (c towerCfg) MinBet() decimal.Decimal        { return decimal.NewFromInt(1) }
func (c towerCfg) Seed() uint64                   { return c.seed }
func (c towerCfg) StatsWindow() int               { return 500 }

func TestRandom_DrawBounds(t *testing.T) {
	t.Parallel()

	gen := NewRandom(towerCfg{seed: 42, chance: 0.7})
	low := decimal.RequireFromString("1.10")
	high := decimal.RequireFromString("2.00")

	wins := 0
	const n = 20000
	for i := 0; i < n; i++ {
		d := gen.Draw()
		assert.False(t, d.Multiplier.LessThan(low), "multiplier %s below range", d.Multiplier)
		assert.False(t, d.Multiplier.GreaterThan(high), "multiplier %s above range", d.Multiplier)
		assert.True(t, d.Multiplier.Equal(d.Multiplier.Round(2)), "multiplier %s has more than two decimals", d.Multiplier)
		if d.Success {
			wins++
		}
	}

	// 0.7 с запасом на разброс
	rate := float64(wins) / n
	assert.InDelta(t, 0.7, rate, 0.02)
}

func TestRandom_SameSeedSameSequence(t *testing.T) {
	t.Parallel()

	a := NewRandom(towerCfg{seed: 7, chance: 0.7})
	b := NewRandom(towerCfg{seed: 7, chance: 0.7})

	for i := 0; i < 100; i++ {
		da, db := a.Draw(), b.Draw()
		assert.True(t, da.Multiplier.Equal(db.Multiplier))
		assert.Equal(t, da.Success, db.Success)
	}
}

func TestRandom_ExtremeChances(t *testing.T) {
	t.Parallel()

	never := NewRandom(towerCfg{seed: 1, chance: 0})
	always := NewRandom(towerCfg{seed: 1, chance: 1})
	for i := 0; i < 1000; i++ {
		assert.False(t, never.Draw().Success)
		assert.True(t, always.Draw().Success)
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	seq := NewSequence(Win("1.5"), Lose("1.2"))

	first := seq.Draw()
	assert.True(t, first.Success)
	assert.Equal(t, "1.5", first.Multiplier.String())

	second := seq.Draw()
	assert.False(t, second.Success)
	assert.Equal(t, "1.2", second.Multiplier.String())

	// По кругу
	assert.True(t, seq.Draw().Success)
	assert.Equal(t, 3, seq.Calls())

	empty := NewSequence()
	assert.False(t, empty.Draw().Success)
}
