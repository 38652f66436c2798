package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// RevenueLedger is the running total of collected cash.
type RevenueLedger struct {
	mu    sync.Mutex
	total decimal.Decimal
}

func NewRevenueLedger() *RevenueLedger {
	return &RevenueLedger{total: decimal.Zero}
}

// Add accrues a non-negative amount.
func (l *RevenueLedger) Add(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: cannot accrue %s", ErrInvalidPayment, amount.String())
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total = l.total.Add(amount)
	return nil
}

// Total returns the current running total without resetting it.
func (l *RevenueLedger) Total() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// TakeAndReset returns the total collected so far and zeroes the ledger in one step.
func (l *RevenueLedger) TakeAndReset() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	taken := l.total
	l.total = decimal.Zero
	return taken
}
