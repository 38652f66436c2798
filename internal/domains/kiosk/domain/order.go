package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRecord is the immutable history entry written on commit.
type OrderRecord struct {
	ID            uuid.UUID
	Sequence      int64
	Dish          string
	Lines         []Line
	Description   string
	TotalCost     decimal.Decimal
	TotalCalories int
	PlacedAt      time.Time
}

// Summary renders the record the way the operator history screen shows it.
func (r OrderRecord) Summary() string {
	return fmt.Sprintf("Order: %s Total Calories: %d calories\nTotal Cost: %s",
		r.Description, r.TotalCalories, r.TotalCost.StringFixed(2))
}

func (r OrderRecord) clone() OrderRecord {
	out := r
	out.Lines = append([]Line(nil), r.Lines...)
	return out
}

// Receipt is returned to the customer for a committed order.
type Receipt struct {
	OrderID       uuid.UUID
	Sequence      int64
	Dish          string
	Lines         []QuoteLine
	TotalCost     decimal.Decimal
	TotalCalories int
	Tendered      decimal.Decimal
	Change        decimal.Decimal
	PlacedAt      time.Time
}
