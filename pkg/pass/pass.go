package pass

import (
	"errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword - bcrypt хэш пароля
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword - сравнивает пароль с хэшем
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
