package middleware

import (
	"context"
	"net/http"
	"strings"
	"tower_backend/pkg/resp"
	"tower_backend/pkg/token"
)

type ctxKey struct{}

// Auth - пропускает только запросы с валидным Bearer access токеном.
// ID пользователя кладется в контекст запроса
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				resp.WriteErrorMessage(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := token.VerifyToken(strings.TrimSpace(raw), secretKey)
			if err != nil || claims.UserID <= 0 {
				resp.WriteErrorMessage(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext - ID пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ctxKey{}).(int)
	return id, ok
}
