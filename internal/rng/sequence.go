package rng

import (
	"github.com/shopspring/decimal"
	"sync"
	"tower_backend/internal/model"
)

// Sequence - детерминированный генератор, повторяющий заданные броски по кругу
type Sequence struct {
	mtx   sync.Mutex
	draws []model.Draw
	next  int
	calls int
}

func NewSequence(draws ...model.Draw) *Sequence {
	return &Sequence{draws: draws}
}

// Win и Lose - сокращения для построения последовательностей в тестах
func Win(multiplier string) model.Draw {
	return model.Draw{Multiplier: decimal.RequireFromString(multiplier), Success: true}
}

func Lose(multiplier string) model.Draw {
	return model.Draw{Multiplier: decimal.RequireFromString(multiplier), Success: false}
}

func (s *Sequence) Draw() model.Draw {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.calls++
	if len(s.draws) == 0 {
		return model.Draw{Multiplier: decimal.NewFromInt(1)}
	}

	d := s.draws[s.next]
	s.next = (s.next + 1) % len(s.draws)
	return d
}

// Calls - сколько раз вызывался Draw
func (s *Sequence) Calls() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.calls
}
