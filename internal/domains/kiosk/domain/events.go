package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	// AggregateKey groups related events, e.g. for message partitioning.
	AggregateKey() string
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderCommitted is raised after an order has been deducted, paid and recorded.
type OrderCommitted struct {
	BaseEvent
	OrderID       uuid.UUID
	Sequence      int64
	Dish          string
	Lines         []Line
	TotalCost     decimal.Decimal
	TotalCalories int
}

func (e OrderCommitted) EventName() string    { return "kiosk.order.committed" }
func (e OrderCommitted) AggregateKey() string { return e.OrderID.String() }

// NewOrderCommitted builds the event for a history record.
func NewOrderCommitted(record OrderRecord) OrderCommitted {
	return OrderCommitted{
		BaseEvent:     BaseEvent{Timestamp: record.PlacedAt},
		OrderID:       record.ID,
		Sequence:      record.Sequence,
		Dish:          record.Dish,
		Lines:         append([]Line(nil), record.Lines...),
		TotalCost:     record.TotalCost,
		TotalCalories: record.TotalCalories,
	}
}

// IngredientRestocked is raised when an operator tops up an ingredient.
type IngredientRestocked struct {
	BaseEvent
	Ingredient string
	Requested  int
	Stock      int
}

func (e IngredientRestocked) EventName() string    { return "kiosk.ingredient.restocked" }
func (e IngredientRestocked) AggregateKey() string { return normalizeName(e.Ingredient) }

// RevenueCollected is raised when an operator empties the cash box.
type RevenueCollected struct {
	BaseEvent
	Amount decimal.Decimal
}

func (e RevenueCollected) EventName() string    { return "kiosk.revenue.collected" }
func (e RevenueCollected) AggregateKey() string { return "revenue" }
