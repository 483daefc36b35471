package events

import (
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
	"tower_backend/internal/model"
)

type Type string

const (
	TypeCashMovement  Type = "cash_movement"
	TypeRoundFinished Type = "round_finished"
)

// Event - сообщение о записи в леджер, публикуется после коммита
type Event struct {
	Type          Type           `json:"type"`
	UserID        int            `json:"user_id"`
	OccurredAt    time.Time      `json:"occurred_at"`
	CashMovement  *CashMovement  `json:"cash_movement,omitempty"`
	RoundFinished *RoundFinished `json:"round_finished,omitempty"`
}

type CashMovement struct {
	TransactionID int64                 `json:"transaction_id"`
	Kind          model.TransactionType `json:"kind"`
	Amount        decimal.Decimal       `json:"amount"`
	BalanceAfter  decimal.Decimal       `json:"balance_after"`
}

type RoundFinished struct {
	RoundID     uuid.UUID        `json:"round_id"`
	Outcome     model.Outcome    `json:"outcome"`
	Bet         decimal.Decimal  `json:"bet"`
	Level       int              `json:"level"`
	Won         bool             `json:"won"`
	PrizeAmount *decimal.Decimal `json:"prize_amount,omitempty"`
}

// Publisher - получатель событий леджера
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// FromTransaction собирает событие о пополнении или выводе
func FromTransaction(tx *model.Transaction) Event {
	return Event{
		Type:       TypeCashMovement,
		UserID:     tx.UserID,
		OccurredAt: tx.CreatedAt,
		CashMovement: &CashMovement{
			TransactionID: tx.ID,
			Kind:          tx.Type,
			Amount:        tx.Amount,
			BalanceAfter:  tx.BalanceAfter,
		},
	}
}

// FromGameHistory собирает событие о завершенном раунде
func FromGameHistory(h *model.GameHistory, outcome model.Outcome) Event {
	ev := Event{
		Type:       TypeRoundFinished,
		UserID:     h.UserID,
		OccurredAt: h.CreatedAt,
		RoundFinished: &RoundFinished{
			RoundID: h.RoundID,
			Outcome: outcome,
			Bet:     h.BetAmount,
			Level:   h.Level,
			Won:     h.Won,
		},
	}
	if h.PrizeAmount.Valid {
		prize := h.PrizeAmount.Decimal
		ev.RoundFinished.PrizeAmount = &prize
	}
	return ev
}
