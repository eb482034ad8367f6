package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks caller mistakes. The wrapped message is safe to show.
var ErrInvalidInput = errors.New("invalid input")

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
