package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid kiosk input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
