package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type Transaction struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"` // cash_in или cash_out
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type Game struct {
	ID          int64            `json:"id"`
	RoundID     uuid.UUID        `json:"round_id"`
	BetAmount   decimal.Decimal  `json:"bet_amount"`
	Level       int              `json:"level"`
	Won         bool             `json:"won"`
	PrizeAmount *decimal.Decimal `json:"prize_amount"` // null для проигранных раундов
	CreatedAt   time.Time        `json:"created_at"`
}

type GameHistoryResponse struct {
	Games []Game `json:"games"`
}
