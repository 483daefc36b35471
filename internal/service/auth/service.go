package auth

import (
	"github.com/google/uuid"
	"time"
	"tower_backend/internal/config"
	"tower_backend/internal/repository"
)

type serv struct {
	txManager repository.TxManager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
	now       func() time.Time
}

func NewService(
	txManager repository.TxManager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
) *serv {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
		now:       time.Now,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}
