package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	orderactivities "github.com/Apurer/ramen-kiosk/internal/durable/temporal/activities/orders"
)

// RunOrderFollowUpSequence journals the order before publishing it, so consumers never see an unjournaled order.
func RunOrderFollowUpSequence(ctx workflow.Context, order domain.OrderRecord) error {
	logger := workflow.GetLogger(ctx)
	orderID := order.ID.String()
	logger.Info("order follow-up sequence started", "orderId", orderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    10,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	if err := workflow.ExecuteActivity(ctx, orderactivities.JournalOrderActivityName, order).Get(ctx, nil); err != nil {
		logger.Error("journal step failed", "orderId", orderID, "error", err)
		return err
	}
	if err := workflow.ExecuteActivity(ctx, orderactivities.PublishOrderCommittedActivityName, order).Get(ctx, nil); err != nil {
		logger.Error("publish step failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("order follow-up sequence completed", "orderId", orderID)
	return nil
}
