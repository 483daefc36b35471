package ledger_repo

import (
	"context"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

const (
	tableTransactions = "transactions"
	tableGameHistory  = "game_history"

	colID           = "id"
	colUserID       = "user_id"
	colType         = "type"
	colAmount       = "amount"
	colBalanceAfter = "balance_after"
	colRoundID      = "round_id"
	colBetAmount    = "bet_amount"
	colLevel        = "level"
	colWon          = "won"
	colPrizeAmount  = "prize_amount"
	colCreatedAt    = "created_at"
)

type repo struct {
	db repository.QuerierGetter
}

func NewLedgerRepository(db repository.QuerierGetter) repository.LedgerRepository {
	return &repo{
		db: db,
	}
}

// InsertTransaction - добавляет запись о пополнении или выводе, возвращает ее ID
func (r *repo) InsertTransaction(ctx context.Context, tx *model.Transaction) (int64, error) {
	query := sq.Insert(tableTransactions).
		Columns(colUserID, colType, colAmount, colBalanceAfter, colCreatedAt).
		Values(tx.UserID, string(tx.Type), tx.Amount, tx.BalanceAfter, tx.CreatedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	return r.insert(ctx, query, tableTransactions)
}

// InsertGameHistory - добавляет запись о завершенном раунде, возвращает ее ID
func (r *repo) InsertGameHistory(ctx context.Context, h *model.GameHistory) (int64, error) {
	query := sq.Insert(tableGameHistory).
		Columns(colUserID, colRoundID, colBetAmount, colLevel, colWon, colPrizeAmount, colCreatedAt).
		Values(h.UserID, h.RoundID, h.BetAmount, h.Level, h.Won, h.PrizeAmount, h.CreatedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	return r.insert(ctx, query, tableGameHistory)
}

func (r *repo) insert(ctx context.Context, query sq.InsertBuilder, table string) (int64, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return id, nil
}

// ListTransactions - последние limit транзакций пользователя, новые первыми
func (r *repo) ListTransactions(ctx context.Context, userID, limit int) ([]model.Transaction, error) {
	query := sq.Select(colID, colUserID, colType, colAmount, colBalanceAfter, colCreatedAt).
		From(tableTransactions).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt+" DESC", colID+" DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]model.Transaction, 0, limit)
	for rows.Next() {
		var (
			t   model.Transaction
			typ string
		)
		if err = rows.Scan(&t.ID, &t.UserID, &typ, &t.Amount, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = model.TransactionType(typ)
		res = append(res, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return res, nil
}

// ListGameHistory - последние limit завершенных раундов пользователя, новые первыми
func (r *repo) ListGameHistory(ctx context.Context, userID, limit int) ([]model.GameHistory, error) {
	query := sq.Select(colID, colUserID, colRoundID, colBetAmount, colLevel, colWon, colPrizeAmount, colCreatedAt).
		From(tableGameHistory).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt+" DESC", colID+" DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]model.GameHistory, 0, limit)
	for rows.Next() {
		var h model.GameHistory
		err = rows.Scan(&h.ID, &h.UserID, &h.RoundID, &h.BetAmount, &h.Level, &h.Won, &h.PrizeAmount, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game history: %w", err)
		}
		res = append(res, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game history: %w", err)
	}

	return res, nil
}

func (r *repo) query(ctx context.Context, query sq.SelectBuilder) (pgx.Rows, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}

	return rows, nil
}
