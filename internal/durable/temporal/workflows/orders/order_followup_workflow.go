package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/durable/temporal/sequences"
)

const (
	// OrderFollowUpWorkflowName is the public identifier for registering the workflow.
	OrderFollowUpWorkflowName = "kiosk.workflows.OrderFollowUp"
	// OrderFollowUpTaskQueue is the queue consumed by the worker processing order follow-ups.
	OrderFollowUpTaskQueue = "KIOSK_ORDER_FOLLOWUP"
)

// OrderFollowUpWorkflowInput carries the committed order.
type OrderFollowUpWorkflowInput struct {
	Order   domain.OrderRecord
	TraceID string
}

// OrderFollowUpWorkflow journals a committed order and then announces it.
func OrderFollowUpWorkflow(ctx workflow.Context, input OrderFollowUpWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := input.Order.ID.String()
	logger.Info("OrderFollowUpWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	if err := sequences.RunOrderFollowUpSequence(ctx, input.Order); err != nil {
		logger.Error("OrderFollowUpWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return err
	}
	logger.Info("OrderFollowUpWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
