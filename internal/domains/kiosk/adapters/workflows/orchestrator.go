package workflows

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
	orderworkflows "github.com/Apurer/ramen-kiosk/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.OrderFollowUp = (*TemporalOrderFollowUp)(nil)
	_ ports.OrderFollowUp = (*InlineOrderFollowUp)(nil)
)

// TemporalOrderFollowUp starts the follow-up workflow on a Temporal cluster.
type TemporalOrderFollowUp struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderFollowUp wires a Temporal client into the follow-up.
func NewTemporalOrderFollowUp(c client.Client) *TemporalOrderFollowUp {
	return &TemporalOrderFollowUp{client: c, taskQueue: orderworkflows.OrderFollowUpTaskQueue}
}

// OrderCommitted starts the workflow without waiting for it. The workflow ID is
// derived from the order ID, so a second start for the same order is a no-op.
func (o *TemporalOrderFollowUp) OrderCommitted(ctx context.Context, record domain.OrderRecord) error {
	if o == nil || o.client == nil {
		return errors.New("temporal order follow-up not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        BuildOrderFollowUpWorkflowID(record),
		TaskQueue: o.taskQueue,
	}
	_, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderFollowUpWorkflowName,
		orderworkflows.OrderFollowUpWorkflowInput{Order: record, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// InlineOrderFollowUp journals and publishes directly, for dev runs without Temporal.
type InlineOrderFollowUp struct {
	journal   ports.OrderJournal
	publisher ports.EventPublisher
}

func NewInlineOrderFollowUp(journal ports.OrderJournal, publisher ports.EventPublisher) *InlineOrderFollowUp {
	return &InlineOrderFollowUp{journal: journal, publisher: publisher}
}

// OrderCommitted journals the order, then publishes it. Publishing is skipped when journaling fails.
func (o *InlineOrderFollowUp) OrderCommitted(ctx context.Context, record domain.OrderRecord) error {
	if o == nil {
		return errors.New("inline order follow-up not configured")
	}
	if o.journal != nil {
		if err := o.journal.Record(ctx, record); err != nil {
			return fmt.Errorf("journal order %s: %w", record.ID, err)
		}
	}
	if o.publisher != nil {
		if err := o.publisher.Publish(ctx, domain.NewOrderCommitted(record)); err != nil {
			return fmt.Errorf("publish order %s: %w", record.ID, err)
		}
	}
	return nil
}

// BuildOrderFollowUpWorkflowID derives a stable workflow ID for an order.
func BuildOrderFollowUpWorkflowID(record domain.OrderRecord) string {
	return fmt.Sprintf("kiosk-order-followup-%s", record.ID)
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
