package env

import (
	"fmt"
	"os"
	"time"
	"tower_backend/internal/config"
)

const (
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"
	accessTokenKeyEnvName       = "ACCESS_TOKEN"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"
)

type jwtConfig struct {
	refreshTokenDuration time.Duration
	accessTokenSecretKey string
	accessTokenDuration  time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	accessToken := os.Getenv(accessTokenKeyEnvName)
	if len(accessToken) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}

	refreshTokenDuration, err := durationFromEnv(refreshTokenDurationEnvName)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token duration: %w", err)
	}

	accessTokenDuration, err := durationFromEnv(accessTokenDurationEnvName)
	if err != nil {
		return nil, fmt.Errorf("invalid access token duration: %w", err)
	}

	return &jwtConfig{
		accessTokenSecretKey: accessToken,
		refreshTokenDuration: refreshTokenDuration,
		accessTokenDuration:  accessTokenDuration,
	}, nil
}

func durationFromEnv(name string) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return 0, fmt.Errorf("%s not found", name)
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.refreshTokenDuration
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}
