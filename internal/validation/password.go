package validation

import (
	"errors"
	"strings"
)

var commonPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidatePassword enforces a 12 character minimum and blocks common
// patterns. The 72 byte maximum is bcrypt's input limit.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return errors.New("password must be at least 12 characters")
	}

	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}

// ValidatePasswordConfirm validates password and checks it matches confirm.
func ValidatePasswordConfirm(password, confirm string) error {
	if password != confirm {
		return errors.New("passwords do not match")
	}
	return ValidatePassword(password)
}
