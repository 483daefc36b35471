package repository

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
)

// Querier - общие методы пула pgx и транзакции
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierGetter возвращает транзакцию из контекста, если она открыта, иначе пул
type QuerierGetter func(ctx context.Context) Querier

// TxManager - менеджер транзакций. Вложенный Do присоединяется к внешней транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)

	GetBalance(ctx context.Context, id int) (decimal.Decimal, error)
	// LockBalance блокирует строку пользователя до конца транзакции
	LockBalance(ctx context.Context, id int) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error
}

// LedgerRepository - только добавление и чтение, обновлений и удалений нет
type LedgerRepository interface {
	InsertTransaction(ctx context.Context, tx *model.Transaction) (id int64, err error)
	InsertGameHistory(ctx context.Context, record *model.GameHistory) (id int64, err error)
	ListTransactions(ctx context.Context, userID int, limit int) ([]model.Transaction, error)
	ListGameHistory(ctx context.Context, userID int, limit int) ([]model.GameHistory, error)
}

type RoundRepository interface {
	// GetRound возвращает nil, если активного раунда нет
	GetRound(ctx context.Context, userID int) (*model.Round, error)
	SaveRound(ctx context.Context, round *model.Round) error
	DeleteRound(ctx context.Context, userID int, roundID uuid.UUID) error
}

// StatsRepository - статистика заведения в памяти процесса
type StatsRepository interface {
	UpdateState(bet, payout decimal.Decimal)
	TowerStats() model.TowerStats
}
