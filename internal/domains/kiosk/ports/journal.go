package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
)

var (
	ErrNotFound           = errors.New("order not found in journal")
	ErrJournalUnavailable = errors.New("order journal not configured")
)

// OrderJournal durably stores committed orders. Record is idempotent by order ID.
type OrderJournal interface {
	Record(ctx context.Context, record domain.OrderRecord) error
	Get(ctx context.Context, id uuid.UUID) (types.OrderProjection, error)
	List(ctx context.Context) ([]types.OrderProjection, error)
	Summary(ctx context.Context) (types.JournalSummary, error)
}
