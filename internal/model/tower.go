package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

// RoundStatus - состояние раунда для клиента
type RoundStatus string

const (
	RoundIdle     RoundStatus = "idle"
	RoundClimbing RoundStatus = "climbing"
)

// Outcome - чем закончилась операция над раундом
type Outcome string

const (
	OutcomeClimbed   Outcome = "climbed"    // Уровень пройден, раунд продолжается
	OutcomeFell      Outcome = "fell"       // Падение, стек сгорел
	OutcomeTaken     Outcome = "taken"      // Забрана часть стека, раунд продолжается
	OutcomeCashedOut Outcome = "cashed_out" // Забран весь стек
	OutcomeCompleted Outcome = "completed"  // Пройден последний уровень, стек зачислен
	OutcomeAbandoned Outcome = "abandoned"  // Игрок сдался
)

// Finished - раунд после такой операции сброшен в idle
func (o Outcome) Finished() bool {
	switch o {
	case OutcomeFell, OutcomeCashedOut, OutcomeCompleted, OutcomeAbandoned:
		return true
	}
	return false
}

// Draw - результат одного броска генератора
type Draw struct {
	Multiplier decimal.Decimal
	Success    bool
}

// Round - активный раунд игрока. Отсутствие раунда означает idle
type Round struct {
	ID           uuid.UUID
	UserID       int
	Bet          decimal.Decimal
	Level        int
	StackedPrize decimal.Decimal
	Taken        decimal.Decimal   // Сколько уже перенесено на баланс в этом раунде
	Multipliers  []decimal.Decimal // По одному на каждую попытку
	StartedAt    time.Time
}

// LastMultiplier возвращает множитель последней попытки
func (r *Round) LastMultiplier() (decimal.Decimal, bool) {
	if len(r.Multipliers) == 0 {
		return decimal.Zero, false
	}
	return r.Multipliers[len(r.Multipliers)-1], true
}

type AdvanceRequest struct {
	Bet     *decimal.Decimal
	RoundID *uuid.UUID
}

type AdvanceResult struct {
	RoundID      uuid.UUID
	Level        int
	StackedPrize decimal.Decimal
	Multiplier   decimal.Decimal
	Success      bool
	Balance      decimal.Decimal
	Outcome      Outcome
	Multipliers  []decimal.Decimal
}

type TakeResult struct {
	RoundID      uuid.UUID
	Level        int
	StackedPrize decimal.Decimal
	Balance      decimal.Decimal
	Outcome      Outcome
}

type AbandonResult struct {
	RoundID uuid.UUID
	Level   int
	Balance decimal.Decimal
	Outcome Outcome
}

// RoundState - все, что нужно клиенту для отрисовки башни
type RoundState struct {
	Status         RoundStatus
	RoundID        *uuid.UUID
	Balance        decimal.Decimal
	Bet            decimal.Decimal
	Level          int
	MaxLevels      int
	StackedPrize   decimal.Decimal
	LastMultiplier *decimal.Decimal
	Multipliers    []decimal.Decimal
}

// TowerStats - статистика заведения по завершенным раундам
type TowerStats struct {
	TotalRounds int
	TotalBet    decimal.Decimal
	TotalPayout decimal.Decimal
	CurrentRTP  float64 // TotalPayout/TotalBet*100
	WindowRTP   float64 // RTP по последним WindowSize раундам
	WindowSize  int
}
