package auth

import (
	"context"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
	"tower_backend/internal/model"
	"tower_backend/internal/repository/mocks"
	"tower_backend/pkg/pass"
	"tower_backend/pkg/token"
)

var secret = []byte("secret")

type jwtCfg struct{}

func (jwtCfg) AccessTokenSecretKey() []byte        { return secret }
func (jwtCfg) AccessTokenDuration() time.Duration  { return time.Minute }
func (jwtCfg) RefreshTokenDuration() time.Duration { return time.Hour }

type deps struct {
	txManager *mocks.MockTxManager
	userRepo  *mocks.MockUserRepository
	authRepo  *mocks.MockAuthRepository
}

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*serv, *deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := &deps{
		txManager: mocks.NewMockTxManager(ctrl),
		userRepo:  mocks.NewMockUserRepository(ctrl),
		authRepo:  mocks.NewMockAuthRepository(ctrl),
	}

	s := NewService(d.txManager, d.userRepo, d.authRepo, jwtCfg{})
	s.now = func() time.Time { return now }
	return s, d
}

func passThroughTx(d *deps) {
	d.txManager.EXPECT().Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestServ_Register(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name        string
		user        *model.User
		prepareFn   func(t *testing.T, d *deps)
		expectedErr error
	}

	tests := []testCase{
		{
			name: "registered",
			user: &model.User{Name: "Alice", Login: " alice ", Password: "secret"},
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				passThroughTx(d)
				d.userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *model.User) (int, error) {
						assert.Equal(t, "alice", u.Login)
						assert.True(t, pass.VerifyPassword(u.Password, "secret"))
						assert.True(t, u.Balance.IsZero())
						return 1, nil
					})
				d.authRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *model.Session) error {
						assert.Equal(t, 1, s.UserID)
						assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)
						return nil
					})
			},
		},
		{
			name: "login taken",
			user: &model.User{Login: "alice", Password: "secret"},
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				passThroughTx(d)
				d.userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					Return(0, &model.UserExistsError{Msg: "exists"})
			},
			expectedErr: &model.UserExistsError{},
		},
		{
			name: "session storage failure",
			user: &model.User{Login: "alice", Password: "secret"},
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				passThroughTx(d)
				d.userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(1, nil)
				d.authRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			expectedErr: &model.PersistenceError{},
		},
		{
			name:        "empty password",
			user:        &model.User{Login: "alice"},
			prepareFn:   func(t *testing.T, d *deps) {},
			expectedErr: &model.ValidationError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newService(t)
			tt.prepareFn(t, d)

			data, err := s.Register(t.Context(), tt.user)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, data.SessionID)
			assert.NotEmpty(t, data.RefreshToken)

			claims, err := token.VerifyToken(data.AccessToken, secret)
			require.NoError(t, err)
			assert.Equal(t, 1, claims.UserID)
		})
	}
}

func TestServ_Login(t *testing.T) {
	t.Parallel()

	hash, err := pass.HashPassword("secret")
	require.NoError(t, err)
	stored := &model.User{ID: 3, Login: "alice", Password: hash, Balance: decimal.NewFromInt(90)}

	type testCase struct {
		name        string
		password    string
		prepareFn   func(t *testing.T, d *deps)
		expectedErr error
	}

	tests := []testCase{
		{
			name:     "valid credentials",
			password: "secret",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.userRepo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(stored, nil)
				d.authRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.userRepo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(stored, nil)
			},
			expectedErr: &model.UnauthorizedError{},
		},
		{
			name:     "unknown login",
			password: "secret",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.userRepo.EXPECT().GetUserByLogin(gomock.Any(), "alice").
					Return(nil, &model.UserNotFoundError{Msg: "not found"})
			},
			expectedErr: &model.UnauthorizedError{},
		},
		{
			name:     "database down",
			password: "secret",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.userRepo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(nil, assert.AnError)
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

			data, err := s.Login(t.Context(), "alice", tt.password)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(90).Equal(data.Balance))
		})
	}
}

func TestServ_Refresh(t *testing.T) {
	t.Parallel()

	refresh, err := token.GenerateRefreshToken()
	require.NoError(t, err)

	live := &model.Session{ID: "sid", UserID: 3, RefreshToken: token.HashRefreshToken(refresh), ExpiresAt: now.Add(time.Hour)}
	expired := &model.Session{ID: "sid", UserID: 3, RefreshToken: token.HashRefreshToken(refresh), ExpiresAt: now}

	type testCase struct {
		name        string
		refresh     string
		prepareFn   func(t *testing.T, d *deps)
		expectedErr error
	}

	tests := []testCase{
		{
			name:    "new access token",
			refresh: refresh,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.authRepo.EXPECT().GetSession(gomock.Any(), "sid").Return(live, nil)
				d.userRepo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&model.User{ID: 3, Login: "alice"}, nil)
			},
		},
		{
			name:    "wrong refresh token",
			refresh: "forged",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.authRepo.EXPECT().GetSession(gomock.Any(), "sid").Return(live, nil)
			},
			expectedErr: &model.UnauthorizedError{},
		},
		{
			name:    "expired session",
			refresh: refresh,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.authRepo.EXPECT().GetSession(gomock.Any(), "sid").Return(expired, nil)
			},
			expectedErr: &model.UnauthorizedError{},
		},
		{
			name:    "unknown session",
			refresh: refresh,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.authRepo.EXPECT().GetSession(gomock.Any(), "sid").
					Return(nil, &model.UnauthorizedError{Msg: "session not found"})
			},
			expectedErr: &model.UnauthorizedError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newService(t)
			tt.prepareFn(t, d)

			access, err := s.Refresh(t.Context(), "sid", tt.refresh)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)

			claims, err := token.VerifyToken(access, secret)
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Login)
		})
	}
}

func TestServ_Logout(t *testing.T) {
	t.Parallel()

	s, d := newService(t)
	d.authRepo.EXPECT().DeleteSession(gomock.Any(), "sid").Return(nil)
	require.NoError(t, s.Logout(t.Context(), "sid"))

	s, d = newService(t)
	d.authRepo.EXPECT().DeleteSession(gomock.Any(), "sid").Return(assert.AnError)
	assert.ErrorIs(t, s.Logout(t.Context(), "sid"), &model.PersistenceError{})
}
