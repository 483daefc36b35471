package auth

import (
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"tower_backend/internal/model"
	"tower_backend/internal/service/mocks"
)

func newHandler(t *testing.T) (*Handler, *mocks.MockAuthService) {
	t.Helper()

	serv := mocks.NewMockAuthService(gomock.NewController(t))
	return NewHandler(HandlerDeps{
		Serv:       serv,
		Logger:     slog.New(slog.DiscardHandler),
		RefreshTTL: time.Hour,
	}), serv
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandler_Register(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name         string
		body         string
		prepareFn    func(serv *mocks.MockAuthService)
		expectedCode int
	}

	tests := []testCase{
		{
			name: "created",
			body: `{"login":"alice","name":"Alice","password":"secret"}`,
			prepareFn: func(serv *mocks.MockAuthService) {
				serv.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(&model.AuthData{AccessToken: "access", RefreshToken: "refresh", SessionID: "sid"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "login taken",
			body: `{"login":"alice","name":"Alice","password":"secret"}`,
			prepareFn: func(serv *mocks.MockAuthService) {
				serv.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, &model.UserExistsError{Msg: "exists"})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "broken body",
			body:         `{"login":`,
			prepareFn:    func(serv *mocks.MockAuthService) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, serv := newHandler(t)
			tt.prepareFn(serv)

			w := httptest.NewRecorder()
			h.Register(w, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				assert.JSONEq(t, `{"access_token":"access"}`, w.Body.String())
				require.NotNil(t, cookie(w, sessionCookie))
				assert.Equal(t, "sid", cookie(w, sessionCookie).Value)
				assert.Equal(t, "refresh", cookie(w, refreshCookie).Value)
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	h, serv := newHandler(t)
	serv.EXPECT().Login(gomock.Any(), "alice", "secret").
		Return(&model.AuthData{AccessToken: "access", RefreshToken: "refresh", SessionID: "sid", Balance: decimal.RequireFromString("90.5")}, nil)

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"alice","password":"secret"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"access","balance":"90.5"}`, w.Body.String())
}

func TestHandler_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("with cookies", func(t *testing.T) {
		t.Parallel()

		h, serv := newHandler(t)
		serv.EXPECT().Refresh(gomock.Any(), "sid", "refresh").Return("new-access", nil)

		r := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
		r.AddCookie(&http.Cookie{Name: refreshCookie, Value: "refresh"})
		w := httptest.NewRecorder()
		h.Refresh(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"access_token":"new-access"}`, w.Body.String())
	})

	t.Run("without cookies", func(t *testing.T) {
		t.Parallel()

		h, _ := newHandler(t)
		w := httptest.NewRecorder()
		h.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	t.Parallel()

	h, serv := newHandler(t)
	serv.EXPECT().Logout(gomock.Any(), "sid").Return(nil)

	r := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	w := httptest.NewRecorder()
	h.Logout(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, cookie(w, sessionCookie))
	assert.Equal(t, -1, cookie(w, sessionCookie).MaxAge)
}
