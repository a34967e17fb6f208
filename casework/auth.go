package casework

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/prosecution-case-api/models"
)

// ErrAuthFailed is the only login failure; it never says which half was wrong
var ErrAuthFailed = errors.New("invalid email or password")

// HashPassword bcrypt-hashes the shared office password once at startup
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Authenticate finds the user with this email and checks the shared password hash
func Authenticate(users []models.User, email, password string, passwordHash []byte) (models.User, error) {
	email = strings.TrimSpace(email)
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(passwordHash, []byte(password)) != nil {
			return models.User{}, ErrAuthFailed
		}
		return u, nil
	}
	return models.User{}, ErrAuthFailed
}
