package middleware

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
	"tower_backend/internal/model"
	"tower_backend/pkg/token"
)

var secret = []byte("secret")

func echoUserID(w http.ResponseWriter, r *http.Request) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(strconv.Itoa(id)))
}

func TestAuth(t *testing.T) {
	t.Parallel()

	valid, err := token.GenerateAccessToken(&model.User{ID: 5, Login: "alice"}, secret, time.Minute)
	require.NoError(t, err)
	expired, err := token.GenerateAccessToken(&model.User{ID: 5}, secret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedBody string
	}{
		{name: "valid token", header: "Bearer " + valid, expectedCode: http.StatusOK, expectedBody: "5"},
		{name: "no header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, expectedCode: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, expectedCode: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc", expectedCode: http.StatusUnauthorized},
	}

	handler := Auth(secret)(http.HandlerFunc(echoUserID))

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/api/balance", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/healthz"`)
}
