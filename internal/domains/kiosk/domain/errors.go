package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("ingredient not found")
	ErrInvalidQuantity     = errors.New("quantity is out of range")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrInvalidPayment      = errors.New("payment amount is invalid")
	ErrDuplicateIngredient = errors.New("ingredient listed more than once")
	ErrInvalidIngredient   = errors.New("ingredient attributes are invalid")
	ErrNotCustomizable     = errors.New("dish is not customizable")
	ErrUnknownDish         = errors.New("dish not found")
)

// StockError reports a selection line that asks for more units than are stocked.
type StockError struct {
	Ingredient string
	Requested  int
	Available  int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Ingredient, e.Requested, e.Available)
}

// Shortfall is the number of units missing to satisfy the request.
func (e *StockError) Shortfall() int {
	return e.Requested - e.Available
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// PaymentError reports tendered cash below the order cost.
type PaymentError struct {
	Required  decimal.Decimal
	Tendered  decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: required %s, tendered %s, short by %s",
		e.Required.StringFixed(2), e.Tendered.StringFixed(2), e.Shortfall.StringFixed(2))
}

func (e *PaymentError) Is(target error) bool {
	return target == ErrInsufficientPayment
}

// IsValidation reports whether err is a caller mistake rather than a business rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrDuplicateIngredient) ||
		errors.Is(err, ErrInvalidIngredient) ||
		errors.Is(err, ErrNotCustomizable)
}
