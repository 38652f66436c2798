package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settlement is the outcome of checking tendered cash against a cost.
type Settlement struct {
	Accepted  bool
	Change    decimal.Decimal
	Shortfall decimal.Decimal
}

// Settle compares cash to cost. A rejected settlement is not an error; negative inputs are.
func Settle(totalCost, cashTendered decimal.Decimal) (Settlement, error) {
	if cashTendered.IsNegative() {
		return Settlement{}, fmt.Errorf("%w: tendered %s", ErrInvalidPayment, cashTendered.String())
	}
	if totalCost.IsNegative() {
		return Settlement{}, fmt.Errorf("%w: cost %s", ErrInvalidPayment, totalCost.String())
	}
	if cashTendered.GreaterThanOrEqual(totalCost) {
		return Settlement{Accepted: true, Change: cashTendered.Sub(totalCost), Shortfall: decimal.Zero}, nil
	}
	return Settlement{Accepted: false, Change: decimal.Zero, Shortfall: totalCost.Sub(cashTendered)}, nil
}
