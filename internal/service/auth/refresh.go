package auth

import (
	"context"
	"errors"
	"tower_backend/internal/model"
	"tower_backend/pkg/token"
)

// Refresh - новый access токен по живой сессии и ее refresh токену
func (s *serv) Refresh(ctx context.Context, sessionID, refreshToken string) (string, error) {
	// Получение сессии из хранилища
	session, err := s.authRepo.GetSession(ctx, sessionID)
	if err != nil {
		return "", model.Persistence("refresh", err)
	}

	// Верификация переданного refresh токена с хэшем из хранилища
	if !token.VerifyRefreshToken(refreshToken, session.RefreshToken) {
		return "", &model.UnauthorizedError{Msg: "invalid refresh token"}
	}
	if session.Expired(s.now()) {
		return "", &model.UnauthorizedError{Msg: "session expired"}
	}

	// Получение пользователя сессии
	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, &model.UserNotFoundError{}) {
			return "", &model.UnauthorizedError{Msg: "session user not found"}
		}
		return "", model.Persistence("refresh", err)
	}

	// Генерация нового access токена
	newAccessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return "", err
	}

	return newAccessToken, nil
}
