package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxState enumerates order transaction progression.
type TxState string

const (
	TxQuoted    TxState = "quoted"
	TxValidated TxState = "validated"
	TxCommitted TxState = "committed"
	TxRejected  TxState = "rejected"
)

var ErrTransactionFinished = errors.New("transaction already executed")

// Transaction validates and commits one order. Failures before commit mutate nothing;
// a failing commit restores stock and leaves the ledger and history untouched.
type Transaction struct {
	spec       DishSpec
	cash       decimal.Decimal
	state      TxState
	quote      Quote
	settlement Settlement
	err        error
}

func NewTransaction(spec DishSpec, cashTendered decimal.Decimal) *Transaction {
	return &Transaction{spec: spec, cash: cashTendered, state: TxQuoted}
}

func (t *Transaction) State() TxState { return t.state }

// Err returns the rejection cause, if any.
func (t *Transaction) Err() error { return t.err }

// Execute runs stock check, quote, payment and commit against the given state.
func (t *Transaction) Execute(catalog *Catalog, ledger *RevenueLedger, history *OrderHistory, now time.Time) (Receipt, OrderRecord, error) {
	if t.state != TxQuoted {
		return Receipt{}, OrderRecord{}, ErrTransactionFinished
	}
	if err := checkStock(catalog, t.spec.Selection); err != nil {
		return t.reject(err)
	}
	quote, err := QuoteSelection(t.spec.Selection, catalog)
	if err != nil {
		return t.reject(err)
	}
	t.quote = quote
	settlement, err := Settle(quote.TotalCost, t.cash)
	if err != nil {
		return t.reject(err)
	}
	if !settlement.Accepted {
		return t.reject(&PaymentError{Required: quote.TotalCost, Tendered: t.cash, Shortfall: settlement.Shortfall})
	}
	t.settlement = settlement
	t.state = TxValidated

	record, err := t.commit(catalog, ledger, history, now)
	if err != nil {
		return t.reject(err)
	}
	t.state = TxCommitted
	receipt := Receipt{
		OrderID:       record.ID,
		Sequence:      record.Sequence,
		Dish:          record.Dish,
		Lines:         append([]QuoteLine(nil), quote.Lines...),
		TotalCost:     quote.TotalCost,
		TotalCalories: quote.TotalCalories,
		Tendered:      t.cash,
		Change:        settlement.Change,
		PlacedAt:      record.PlacedAt,
	}
	return receipt, record, nil
}

func (t *Transaction) commit(catalog *Catalog, ledger *RevenueLedger, history *OrderHistory, now time.Time) (OrderRecord, error) {
	// Stock may have moved since validation when callers share the catalog without the kiosk lock.
	if err := checkStock(catalog, t.spec.Selection); err != nil {
		return OrderRecord{}, err
	}
	before := catalog.stockLevels()
	for _, line := range t.spec.Selection.lines {
		if line.Quantity == 0 {
			continue
		}
		if err := catalog.Deduct(line.Ingredient, line.Quantity); err != nil {
			catalog.restoreStock(before)
			return OrderRecord{}, err
		}
	}
	if err := ledger.Add(t.quote.TotalCost); err != nil {
		catalog.restoreStock(before)
		return OrderRecord{}, err
	}
	record := history.Append(OrderRecord{
		ID:            uuid.New(),
		Dish:          t.spec.Dish.Name,
		Lines:         t.spec.Selection.Lines(),
		Description:   t.spec.Selection.Describe(),
		TotalCost:     t.quote.TotalCost,
		TotalCalories: t.quote.TotalCalories,
		PlacedAt:      now,
	})
	return record, nil
}

func (t *Transaction) reject(err error) (Receipt, OrderRecord, error) {
	t.state = TxRejected
	t.err = err
	return Receipt{}, OrderRecord{}, err
}

func checkStock(catalog *Catalog, selection Selection) error {
	for _, line := range selection.lines {
		if line.Quantity < 0 {
			return fmt.Errorf("%w: %s quantity %d is negative", ErrInvalidQuantity, line.Ingredient, line.Quantity)
		}
		ing, err := catalog.FindByName(line.Ingredient)
		if err != nil {
			return err
		}
		if line.Quantity > ing.Stock {
			return &StockError{Ingredient: ing.Name, Requested: line.Quantity, Available: ing.Stock}
		}
	}
	return nil
}
