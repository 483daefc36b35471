package tower

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdvanceRequest struct {
	Bet     *decimal.Decimal `json:"bet,omitempty"`      // Нужна только для первого уровня
	RoundID *uuid.UUID       `json:"round_id,omitempty"` // Защита от повторной отправки в завершенный раунд
}

type AdvanceResponse struct {
	RoundID      uuid.UUID         `json:"round_id"`
	Status       string            `json:"status"`
	Outcome      string            `json:"outcome"`
	Success      bool              `json:"success"`
	Multiplier   decimal.Decimal   `json:"multiplier"`
	Level        int               `json:"level"`
	StackedPrize decimal.Decimal   `json:"stacked_prize"`
	Balance      decimal.Decimal   `json:"balance"`
	Multipliers  []decimal.Decimal `json:"multipliers"`
}

type TakeRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type TakeResponse struct {
	RoundID      uuid.UUID       `json:"round_id"`
	Status       string          `json:"status"`
	Outcome      string          `json:"outcome"`
	Level        int             `json:"level"`
	StackedPrize decimal.Decimal `json:"stacked_prize"`
	Balance      decimal.Decimal `json:"balance"`
}

type AbandonResponse struct {
	RoundID uuid.UUID       `json:"round_id"`
	Status  string          `json:"status"`
	Outcome string          `json:"outcome"`
	Level   int             `json:"level"`
	Balance decimal.Decimal `json:"balance"`
}

type StateResponse struct {
	Status         string            `json:"status"` // idle или climbing
	RoundID        *uuid.UUID        `json:"round_id"`
	Balance        decimal.Decimal   `json:"balance"`
	Bet            decimal.Decimal   `json:"bet"`
	Level          int               `json:"level"`
	MaxLevels      int               `json:"max_levels"`
	StackedPrize   decimal.Decimal   `json:"stacked_prize"`
	LastMultiplier *decimal.Decimal  `json:"last_multiplier"`
	Multipliers    []decimal.Decimal `json:"multipliers"`
}

type StatsResponse struct {
	TotalRounds int             `json:"total_rounds"`
	TotalBet    decimal.Decimal `json:"total_bet"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	CurrentRTP  float64         `json:"current_rtp"`
	WindowRTP   float64         `json:"window_rtp"`
	WindowSize  int             `json:"window_size"`
}
