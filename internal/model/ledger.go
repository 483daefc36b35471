package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

// TransactionType - тип движения денег вне игры
type TransactionType string

const (
	TransactionCashIn  TransactionType = "cash_in"
	TransactionCashOut TransactionType = "cash_out"
)

// Valid - закрытый набор типов транзакций
func (t TransactionType) Valid() bool {
	return t == TransactionCashIn || t == TransactionCashOut
}

// Transaction - неизменяемая запись о пополнении или выводе
type Transaction struct {
	ID           int64
	UserID       int
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal // Баланс сразу после операции
	CreatedAt    time.Time
}

// GameHistory - неизменяемая запись о завершенном раунде
type GameHistory struct {
	ID          int64
	UserID      int
	RoundID     uuid.UUID
	BetAmount   decimal.Decimal
	Level       int
	Won         bool
	PrizeAmount decimal.NullDecimal // Пусто, если раунд проигран
	CreatedAt   time.Time
}
