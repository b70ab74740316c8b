package auth

import (
	"errors"

	"github.com/dmitrijs2005/worklog/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.NewValidationError("password must be at most 72 bytes")
		}
		return nil, err
	}
	return hash, nil
}

// CheckPassword returns common.ErrorUnauthorized when password does not
// match hash.
func CheckPassword(hash []byte, password string) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}
