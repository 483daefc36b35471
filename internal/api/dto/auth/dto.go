package auth

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	Balance     decimal.Decimal `json:"balance"`
}
