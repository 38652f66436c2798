package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

const (
	// JournalOrderActivityName writes a committed order to the durable journal.
	JournalOrderActivityName = "kiosk.activities.JournalOrder"
	// PublishOrderCommittedActivityName announces a committed order downstream.
	PublishOrderCommittedActivityName = "kiosk.activities.PublishOrderCommitted"
)

// Activities groups the order follow-up activities.
type Activities struct {
	journal   ports.OrderJournal
	publisher ports.EventPublisher
}

// NewActivities wires the journal and publisher. A nil publisher skips announcing.
func NewActivities(journal ports.OrderJournal, publisher ports.EventPublisher) *Activities {
	return &Activities{journal: journal, publisher: publisher}
}

// JournalOrder is safe to retry; the journal ignores repeated order IDs.
func (a *Activities) JournalOrder(ctx context.Context, order domain.OrderRecord) error {
	logger := activity.GetLogger(ctx)
	orderID := order.ID.String()
	if a == nil || a.journal == nil {
		logger.Error("journal activity not initialized", "orderId", orderID)
		return errors.New("journal activity not initialized")
	}
	logger.Info("JournalOrder activity started", "orderId", orderID, "sequence", order.Sequence)
	if err := a.journal.Record(ctx, order); err != nil {
		logger.Error("JournalOrder activity failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("JournalOrder activity completed", "orderId", orderID)
	return nil
}

func (a *Activities) PublishOrderCommitted(ctx context.Context, order domain.OrderRecord) error {
	logger := activity.GetLogger(ctx)
	orderID := order.ID.String()
	if a == nil {
		logger.Error("publish activity not initialized", "orderId", orderID)
		return errors.New("publish activity not initialized")
	}
	if a.publisher == nil {
		logger.Info("event publisher not configured; skipping", "orderId", orderID)
		return nil
	}
	logger.Info("PublishOrderCommitted activity started", "orderId", orderID)
	if err := a.publisher.Publish(ctx, domain.NewOrderCommitted(order)); err != nil {
		logger.Error("PublishOrderCommitted activity failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("PublishOrderCommitted activity completed", "orderId", orderID)
	return nil
}
