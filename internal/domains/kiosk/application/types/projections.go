package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/shared/projection"
)

// OrderProjection is a journaled order plus its persistence timestamps.
type OrderProjection = projection.Projection[domain.OrderRecord]

// NewOrderProjection wraps a record with persistence metadata.
func NewOrderProjection(record domain.OrderRecord, createdAt, updatedAt time.Time) OrderProjection {
	return OrderProjection{
		Entity:   record,
		Metadata: projection.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}

// JournalSummary aggregates everything the journal has recorded.
type JournalSummary struct {
	Orders  int64
	Revenue decimal.Decimal
}

// JournalView is the operator view of the durable journal.
type JournalView struct {
	Entries []OrderProjection
	Summary JournalSummary
}
