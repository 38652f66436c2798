package ports

import (
	"context"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
)

// OrderFollowUp runs the post-commit work for an order: journaling and announcing it.
// Implementations must tolerate being invoked more than once for the same order.
type OrderFollowUp interface {
	OrderCommitted(ctx context.Context, record domain.OrderRecord) error
}
