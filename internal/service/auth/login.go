package auth

import (
	"context"
	"errors"
	"tower_backend/internal/model"
	"tower_backend/pkg/pass"
	"tower_backend/pkg/token"
)

// Login - проверка пароля и новая сессия. Неверный логин и неверный пароль неразличимы
func (s *serv) Login(ctx context.Context, login, password string) (*model.AuthData, error) {
	// Получение пользователя из бд по логину
	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, &model.UserNotFoundError{}) {
			return nil, &model.UnauthorizedError{Msg: "invalid login or password"}
		}
		return nil, model.Persistence("login", err)
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.Password, password) {
		return nil, &model.UnauthorizedError{Msg: "invalid login or password"}
	}

	data, err := s.openSession(ctx, user)
	if err != nil {
		return nil, model.Persistence("login", err)
	}
	return data, nil
}

// openSession - сессия с хэшем refresh токена и пара токенов для клиента
func (s *serv) openSession(ctx context.Context, user *model.User) (*model.AuthData, error) {
	// 1. Генерация sessionID и refresh токена
	sessionID := generateSessionID()
	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// 2. Создать сессию
	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:           sessionID,
			UserID:       user.ID,
			RefreshToken: token.HashRefreshToken(refreshToken),
			ExpiresAt:    s.now().Add(s.jwtConfig.RefreshTokenDuration()),
		})
	if err != nil {
		return nil, err
	}

	// 3. Создать access токен
	accessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
		Balance:      user.Balance,
	}, nil
}
