package auth

import (
	"context"
	"github.com/shopspring/decimal"
	"strings"
	"tower_backend/internal/model"
	"tower_backend/pkg/pass"
)

// Register - создает пользователя с нулевым балансом и первую сессию
func (s *serv) Register(ctx context.Context, user *model.User) (*model.AuthData, error) {
	user.Login = strings.TrimSpace(user.Login)
	if user.Login == "" || user.Password == "" {
		return nil, &model.ValidationError{Msg: "login and password are required"}
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash
	user.Balance = decimal.Zero

	var data *model.AuthData

	// Начало транзакциии
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Создать пользователя в бд
		id, err := s.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		// 2. Создать сессию и токены
		data, err = s.openSession(ctx, user)
		return err
	})
	if err != nil {
		return nil, model.Persistence("register", err)
	}

	return data, nil
}
