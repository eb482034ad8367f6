package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// ValidateEmail checks length limits and RFC 5322 syntax.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email address is required")
	}

	// RFC 5321: 254 characters including the @
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address format")
	}

	return nil
}
