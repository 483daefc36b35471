package service

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

import (
	"context"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}

// WalletService - единственный владелец баланса пользователя
type WalletService interface {
	Lock(ctx context.Context, userID int) (decimal.Decimal, error)
	Debit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error)
	CashIn(ctx context.Context, userID int, amount decimal.Decimal) (*model.Transaction, error)
	CashOut(ctx context.Context, userID int, amount decimal.Decimal) (*model.Transaction, error)
	Balance(ctx context.Context, userID int) (decimal.Decimal, error)
}

// LedgerService - журнал только на добавление
type LedgerService interface {
	RecordTransaction(ctx context.Context, tx *model.Transaction) error
	RecordGameHistory(ctx context.Context, h *model.GameHistory) error
	ListTransactions(ctx context.Context, userID, limit int) ([]model.Transaction, error)
	ListGameHistory(ctx context.Context, userID, limit int) ([]model.GameHistory, error)
}

type TowerService interface {
	Advance(ctx context.Context, userID int, req model.AdvanceRequest) (*model.AdvanceResult, error)
	Take(ctx context.Context, userID int, amount decimal.Decimal) (*model.TakeResult, error)
	Abandon(ctx context.Context, userID int) (*model.AbandonResult, error)
	State(ctx context.Context, userID int) (*model.RoundState, error)
	Stats() model.TowerStats
}

