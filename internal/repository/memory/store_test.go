package memory

import (
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
	"tower_backend/internal/model"
)

func newUser(t *testing.T, s *Store, login string, balance int64) int {
	t.Helper()

	id, err := s.CreateUser(t.Context(), &model.User{Name: login, Login: login, Password: "hash", Balance: decimal.NewFromInt(balance)})
	require.NoError(t, err)
	return id
}

func TestStore_CreateUser(t *testing.T) {
	t.Parallel()

	s := NewStore()
	first := newUser(t, s, "alice", 0)
	second := newUser(t, s, "bob", 0)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	_, err := s.CreateUser(t.Context(), &model.User{Login: "alice"})
	assert.ErrorIs(t, err, &model.UserExistsError{})

	user, err := s.GetUserByLogin(t.Context(), "bob")
	require.NoError(t, err)
	assert.Equal(t, second, user.ID)

	_, err = s.GetUserByID(t.Context(), 42)
	assert.ErrorIs(t, err, &model.UserNotFoundError{})
}

func TestStore_DoRollback(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := newUser(t, s, "alice", 100)

	err := s.Do(t.Context(), func(ctx context.Context) error {
		require.NoError(t, s.UpdateBalance(ctx, id, decimal.NewFromInt(40)))
		_, err := s.InsertTransaction(ctx, &model.Transaction{UserID: id, Type: model.TransactionCashOut, Amount: decimal.NewFromInt(60)})
		require.NoError(t, err)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	balance, err := s.GetBalance(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(balance))

	list, err := s.ListTransactions(t.Context(), id, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_DoNested(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := newUser(t, s, "alice", 100)

	err := s.Do(t.Context(), func(ctx context.Context) error {
		require.NoError(t, s.Do(ctx, func(ctx context.Context) error {
			return s.UpdateBalance(ctx, id, decimal.NewFromInt(10))
		}))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	// Внутренний Do откатился вместе с внешним
	balance, err := s.GetBalance(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(balance))
}

func TestStore_DoSerializes(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := newUser(t, s, "alice", 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(context.Background(), func(ctx context.Context) error {
				balance, err := s.LockBalance(ctx, id)
				if err != nil {
					return err
				}
				return s.UpdateBalance(ctx, id, balance.Add(decimal.NewFromInt(1)))
			})
		}()
	}
	wg.Wait()

	balance, err := s.GetBalance(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(balance))
}

func TestStore_Rounds(t *testing.T) {
	t.Parallel()

	s := NewStore()
	round, err := s.GetRound(t.Context(), 1)
	require.NoError(t, err)
	assert.Nil(t, round)

	id := uuid.New()
	require.NoError(t, s.SaveRound(t.Context(), &model.Round{
		ID:          id,
		UserID:      1,
		Bet:         decimal.NewFromInt(10),
		Multipliers: []decimal.Decimal{decimal.RequireFromString("1.5")},
	}))

	round, err = s.GetRound(t.Context(), 1)
	require.NoError(t, err)
	require.NotNil(t, round)
	assert.Equal(t, id, round.ID)

	// Изменение полученной копии не трогает хранилище
	round.Multipliers[0] = decimal.Zero
	again, err := s.GetRound(t.Context(), 1)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.5").Equal(again.Multipliers[0]))

	assert.ErrorIs(t, s.DeleteRound(t.Context(), 1, uuid.New()), &model.InvalidStateError{})
	require.NoError(t, s.DeleteRound(t.Context(), 1, id))
	assert.ErrorIs(t, s.DeleteRound(t.Context(), 1, id), &model.InvalidStateError{})
}

func TestStore_ListOrderAndLimit(t *testing.T) {
	t.Parallel()

	s := NewStore()
	now := time.Now()
	for i := 0; i < 3; i++ {
		_, err := s.InsertGameHistory(t.Context(), &model.GameHistory{UserID: 1, Level: i, CreatedAt: now})
		require.NoError(t, err)
	}
	_, err := s.InsertGameHistory(t.Context(), &model.GameHistory{UserID: 2, CreatedAt: now})
	require.NoError(t, err)

	list, err := s.ListGameHistory(t.Context(), 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Level)
	assert.Equal(t, 1, list[1].Level)
}

func TestStore_Sessions(t *testing.T) {
	t.Parallel()

	s := NewStore()
	require.NoError(t, s.CreateSession(t.Context(), &model.Session{ID: "sid", UserID: 1}))

	session, err := s.GetSession(t.Context(), "sid")
	require.NoError(t, err)
	assert.Equal(t, 1, session.UserID)

	require.NoError(t, s.DeleteSession(t.Context(), "sid"))
	_, err = s.GetSession(t.Context(), "sid")
	assert.ErrorIs(t, err, &model.UnauthorizedError{})
}
