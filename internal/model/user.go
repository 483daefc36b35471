package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  decimal.Decimal
}

// UserClaims - полезная нагрузка access токена
type UserClaims struct {
	UserID int    `json:"uid"`
	Login  string `json:"usr"`
	jwt.RegisteredClaims
}

// AuthData - результат регистрации или входа
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	Balance      decimal.Decimal
}
