package auth

import (
	"context"
	"tower_backend/internal/model"
)

// Logout - удаляет сессию, refresh токен перестает работать
func (s *serv) Logout(ctx context.Context, sessionID string) error {
	if err := s.authRepo.DeleteSession(ctx, sessionID); err != nil {
		return model.Persistence("logout", err)
	}
	return nil
}
