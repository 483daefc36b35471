package auth_repo

import (
	"context"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

func newRepo(t *testing.T) (repository.AuthRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewAuthRepository(func(context.Context) repository.Querier { return mock }), mock
}

func TestRepo_CreateSession(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	session := &model.Session{ID: "sid", UserID: 3, RefreshToken: "hash", ExpiresAt: expires}

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		r, mock := newRepo(t)
		mock.ExpectExec(`INSERT INTO sessions \(session_id,user_id,refresh_hash,expired_time\) VALUES \(\$1,\$2,\$3,\$4\)`).
			WithArgs("sid", 3, "hash", expires).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, r.CreateSession(t.Context(), session))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		t.Parallel()

		r, mock := newRepo(t)
		mock.ExpectExec(`INSERT INTO sessions`).
			WithArgs("sid", 3, "hash", expires).
			WillReturnError(assert.AnError)

		assert.ErrorIs(t, r.CreateSession(t.Context(), session), assert.AnError)
	})
}

func TestRepo_GetSession(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		expires := time.Now().Add(time.Hour)
		r, mock := newRepo(t)
		mock.ExpectQuery(`SELECT session_id, user_id, refresh_hash, expired_time FROM sessions WHERE session_id = \$1`).
			WithArgs("sid").
			WillReturnRows(pgxmock.NewRows([]string{"session_id", "user_id", "refresh_hash", "expired_time"}).
				AddRow("sid", 3, "hash", expires))

		s, err := r.GetSession(t.Context(), "sid")
		require.NoError(t, err)
		assert.Equal(t, 3, s.UserID)
		assert.Equal(t, "hash", s.RefreshToken)
		assert.True(t, expires.Equal(s.ExpiresAt))
	})

	t.Run("missing session", func(t *testing.T) {
		t.Parallel()

		r, mock := newRepo(t)
		mock.ExpectQuery(`SELECT .* FROM sessions`).
			WithArgs("nope").
			WillReturnError(pgx.ErrNoRows)

		_, err := r.GetSession(t.Context(), "nope")
		assert.ErrorIs(t, err, &model.UnauthorizedError{})
	})
}

func TestRepo_DeleteSession(t *testing.T) {
	t.Parallel()

	r, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM sessions WHERE session_id = \$1`).
		WithArgs("sid").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, r.DeleteSession(t.Context(), "sid"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
