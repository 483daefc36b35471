package ledger_repo

import (
	"context"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

func newRepo(t *testing.T) (repository.LedgerRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewLedgerRepository(func(context.Context) repository.Querier { return mock }), mock
}

func TestRepo_InsertTransaction(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	tx := &model.Transaction{
		UserID:       1,
		Type:         model.TransactionCashIn,
		Amount:       decimal.NewFromInt(100),
		BalanceAfter: decimal.NewFromInt(100),
		CreatedAt:    now,
	}

	t.Run("inserted", func(t *testing.T) {
		t.Parallel()

		r, mock := newRepo(t)
		mock.ExpectQuery(`INSERT INTO transactions \(user_id,type,amount,balance_after,created_at\) .* RETURNING id`).
			WithArgs(1, "cash_in", pgxmock.AnyArg(), pgxmock.AnyArg(), now).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

		id, err := r.InsertTransaction(t.Context(), tx)
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		t.Parallel()

		r, mock := newRepo(t)
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs(1, "cash_in", pgxmock.AnyArg(), pgxmock.AnyArg(), now).
			WillReturnError(assert.AnError)

		_, err := r.InsertTransaction(t.Context(), tx)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestRepo_InsertGameHistory(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	roundID := uuid.New()
	r, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO game_history \(user_id,round_id,bet_amount,level,won,prize_amount,created_at\)`).
		WithArgs(2, roundID, pgxmock.AnyArg(), 3, false, pgxmock.AnyArg(), now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))

	id, err := r.InsertGameHistory(t.Context(), &model.GameHistory{
		UserID:    2,
		RoundID:   roundID,
		BetAmount: decimal.NewFromInt(10),
		Level:     3,
		Won:       false,
		CreatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListTransactions(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	r, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, user_id, type, amount, balance_after, created_at FROM transactions WHERE user_id = \$1 ORDER BY created_at DESC, id DESC LIMIT 2`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "type", "amount", "balance_after", "created_at"}).
			AddRow(int64(2), 1, "cash_out", decimal.NewFromInt(40), decimal.NewFromInt(60), now).
			AddRow(int64(1), 1, "cash_in", decimal.NewFromInt(100), decimal.NewFromInt(100), now.Add(-time.Minute)))

	list, err := r.ListTransactions(t.Context(), 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.TransactionCashOut, list[0].Type)
	assert.True(t, decimal.NewFromInt(60).Equal(list[0].BalanceAfter))
	assert.Equal(t, model.TransactionCashIn, list[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListGameHistory(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	roundID := uuid.New()
	prize := decimal.NewNullDecimal(decimal.RequireFromString("22.5"))
	r, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, user_id, round_id, bet_amount, level, won, prize_amount, created_at FROM game_history WHERE user_id = \$1`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "round_id", "bet_amount", "level", "won", "prize_amount", "created_at"}).
			AddRow(int64(1), 1, roundID, decimal.NewFromInt(10), 2, true, prize, now))

	list, err := r.ListGameHistory(t.Context(), 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, roundID, list[0].RoundID)
	assert.True(t, list[0].Won)
	assert.True(t, list[0].PrizeAmount.Valid)
	assert.True(t, decimal.RequireFromString("22.5").Equal(list[0].PrizeAmount.Decimal))
}

func TestRepo_ListTransactions_QueryError(t *testing.T) {
	t.Parallel()

	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT .* FROM transactions`).
		WithArgs(1).
		WillReturnError(assert.AnError)

	_, err := r.ListTransactions(t.Context(), 1, 10)
	assert.ErrorIs(t, err, assert.AnError)
}
