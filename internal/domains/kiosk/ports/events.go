package ports

import (
	"context"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
)

// EventPublisher announces kiosk domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}
