package ledger

import (
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
	"tower_backend/internal/model"
	"tower_backend/internal/repository/memory"
	"tower_backend/internal/repository/mocks"
)

type pageSize int

func (p pageSize) PageSize() int { return int(p) }

type deps struct {
	ledgerRepo *mocks.MockLedgerRepository
}

func newService(t *testing.T) (*serv, *deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := &deps{ledgerRepo: mocks.NewMockLedgerRepository(ctrl)}

	s := NewService(d.ledgerRepo, pageSize(50))
	s.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s, d
}

func TestServ_RecordTransaction(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name        string
		tx          *model.Transaction
		prepareFn   func(t *testing.T, d *deps)
		expectedErr error
	}

	tests := []testCase{
		{
			name: "recorded",
			tx:   &model.Transaction{UserID: 1, Type: model.TransactionCashIn, Amount: decimal.NewFromInt(10), BalanceAfter: decimal.NewFromInt(10)},
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.ledgerRepo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, tx *model.Transaction) (int64, error) {
						assert.Equal(t, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), tx.CreatedAt)
						return 9, nil
					})
			},
		},
		{
			name:        "unknown type",
			tx:          &model.Transaction{UserID: 1, Type: "bet", Amount: decimal.NewFromInt(10)},
			prepareFn:   func(t *testing.T, d *deps) {},
			expectedErr: &model.InvalidAmountError{},
		},
		{
			name:        "zero amount",
			tx:          &model.Transaction{UserID: 1, Type: model.TransactionCashOut, Amount: decimal.Zero},
			prepareFn:   func(t *testing.T, d *deps) {},
			expectedErr: &model.InvalidAmountError{},
		},
		{
			name: "storage failure",
			tx:   &model.Transaction{UserID: 1, Type: model.TransactionCashOut, Amount: decimal.NewFromInt(5)},
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.ledgerRepo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(int64(0), assert.AnError)
			},
			expectedErr: &model.PersistenceError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newService(t)
			tt.prepareFn(t, d)

			err := s.RecordTransaction(t.Context(), tt.tx)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(9), tt.tx.ID)
		})
	}
}

func TestServ_RecordGameHistory(t *testing.T) {
	t.Parallel()

	roundID := uuid.New()
	prize := decimal.NewNullDecimal(decimal.RequireFromString("22.5"))

	type testCase struct {
		name         string
		h            *model.GameHistory
		expectInsert bool
		expectedErr  error
	}

	tests := []testCase{
		{
			name:         "won with prize",
			h:            &model.GameHistory{UserID: 1, RoundID: roundID, BetAmount: decimal.NewFromInt(10), Level: 1, Won: true, PrizeAmount: prize},
			expectInsert: true,
		},
		{
			name:         "lost without prize",
			h:            &model.GameHistory{UserID: 1, RoundID: roundID, BetAmount: decimal.NewFromInt(10), Level: 0},
			expectInsert: true,
		},
		{
			name:        "won without prize",
			h:           &model.GameHistory{UserID: 1, RoundID: roundID, BetAmount: decimal.NewFromInt(10), Won: true},
			expectedErr: &model.InvalidAmountError{},
		},
		{
			name:        "lost with prize",
			h:           &model.GameHistory{UserID: 1, RoundID: roundID, BetAmount: decimal.NewFromInt(10), PrizeAmount: prize},
			expectedErr: &model.InvalidAmountError{},
		},
		{
			name:        "no bet",
			h:           &model.GameHistory{UserID: 1, RoundID: roundID},
			expectedErr: &model.InvalidAmountError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newService(t)
			if tt.expectInsert {
				d.ledgerRepo.EXPECT().InsertGameHistory(gomock.Any(), tt.h).Return(int64(1), nil)
			}

			err := s.RecordGameHistory(t.Context(), tt.h)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), tt.h.ID)
			assert.False(t, tt.h.CreatedAt.IsZero())
		})
	}
}

func TestServ_ListLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "default", limit: 0, expected: 50},
		{name: "within page", limit: 10, expected: 10},
		{name: "clamped", limit: 500, expected: 50},
		{name: "negative", limit: -1, expected: 50},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newService(t)
			d.ledgerRepo.EXPECT().ListTransactions(gomock.Any(), 1, tt.expected).Return([]model.Transaction{}, nil)
			d.ledgerRepo.EXPECT().ListGameHistory(gomock.Any(), 1, tt.expected).Return(nil, assert.AnError)

			_, err := s.ListTransactions(t.Context(), 1, tt.limit)
			require.NoError(t, err)

			_, err = s.ListGameHistory(t.Context(), 1, tt.limit)
			assert.ErrorIs(t, err, &model.PersistenceError{})
		})
	}
}

func TestServ_ListRepeatable(t *testing.T) {
	t.Parallel()

	// Время одно на все записи, порядок решает id
	s := NewService(memory.NewStore(), pageSize(50))
	s.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	for i := 1; i <= 4; i++ {
		require.NoError(t, s.RecordTransaction(t.Context(), &model.Transaction{
			UserID:       1,
			Type:         model.TransactionCashIn,
			Amount:       decimal.NewFromInt(int64(i)),
			BalanceAfter: decimal.NewFromInt(int64(i * 10)),
		}))
		require.NoError(t, s.RecordGameHistory(t.Context(), &model.GameHistory{
			UserID:    1,
			RoundID:   uuid.New(),
			BetAmount: decimal.NewFromInt(int64(i)),
			Level:     i,
		}))
	}

	first, err := s.ListTransactions(t.Context(), 1, 0)
	require.NoError(t, err)
	second, err := s.ListTransactions(t.Context(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first, 4)
	for i, tx := range first {
		assert.Equal(t, int64(4-i), tx.ID)
	}

	firstGames, err := s.ListGameHistory(t.Context(), 1, 0)
	require.NoError(t, err)
	secondGames, err := s.ListGameHistory(t.Context(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, firstGames, secondGames)
	require.Len(t, firstGames, 4)
	assert.Equal(t, 4, firstGames[0].Level)
	assert.Equal(t, 1, firstGames[3].Level)
}
