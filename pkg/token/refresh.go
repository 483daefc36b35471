package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

const refreshTokenBytes = 32

// GenerateRefreshToken - случайные 256 бит в base64url без паддинга
func GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshToken - в хранилище лежит только sha256 от токена
func HashRefreshToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifyRefreshToken - сравнение за постоянное время
func VerifyRefreshToken(token, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(token)), []byte(hash)) == 1
}
