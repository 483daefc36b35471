package model

import "time"

type Session struct {
	ID           string
	UserID       int
	RefreshToken string // sha256 от refresh токена, сам токен не храним
	ExpiresAt    time.Time
}

// Expired проверяет, истекла ли сессия на момент now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
