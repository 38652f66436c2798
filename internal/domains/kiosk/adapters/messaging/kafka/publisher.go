package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
	platformkafka "github.com/Apurer/ramen-kiosk/internal/platform/kafka"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher writes kiosk events to a Kafka topic as JSON envelopes keyed by aggregate.
type Publisher struct {
	writer platformkafka.MessageWriter
}

func NewPublisher(writer platformkafka.MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Envelope is the wire shape of every kiosk event.
type Envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload"`
}

type linePayload struct {
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity"`
}

type orderCommittedPayload struct {
	OrderID       string        `json:"orderId"`
	Sequence      int64         `json:"sequence"`
	Dish          string        `json:"dish"`
	Lines         []linePayload `json:"lines"`
	TotalCost     string        `json:"totalCost"`
	TotalCalories int           `json:"totalCalories"`
}

type ingredientRestockedPayload struct {
	Ingredient string `json:"ingredient"`
	Requested  int    `json:"requested"`
	Stock      int    `json:"stock"`
}

type revenueCollectedPayload struct {
	Amount string `json:"amount"`
}

// Publish writes events in order and stops at the first failure.
func (p *Publisher) Publish(ctx context.Context, events ...domain.Event) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka publisher not configured")
	}
	for _, event := range events {
		envelope, err := NewEnvelope(event)
		if err != nil {
			return err
		}
		if err := platformkafka.PublishJSON(ctx, p.writer, envelope.Key, envelope); err != nil {
			return fmt.Errorf("publish %s: %w", envelope.Event, err)
		}
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NewEnvelope renders a domain event into its wire envelope.
func NewEnvelope(event domain.Event) (Envelope, error) {
	if event == nil {
		return Envelope{}, errors.New("event is nil")
	}
	envelope := Envelope{
		Event:      event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
		Key:        event.AggregateKey(),
	}
	switch e := event.(type) {
	case domain.OrderCommitted:
		lines := make([]linePayload, 0, len(e.Lines))
		for _, line := range e.Lines {
			lines = append(lines, linePayload{Ingredient: line.Ingredient, Quantity: line.Quantity})
		}
		envelope.Payload = orderCommittedPayload{
			OrderID:       e.OrderID.String(),
			Sequence:      e.Sequence,
			Dish:          e.Dish,
			Lines:         lines,
			TotalCost:     e.TotalCost.StringFixed(2),
			TotalCalories: e.TotalCalories,
		}
	case domain.IngredientRestocked:
		envelope.Payload = ingredientRestockedPayload{Ingredient: e.Ingredient, Requested: e.Requested, Stock: e.Stock}
	case domain.RevenueCollected:
		envelope.Payload = revenueCollectedPayload{Amount: e.Amount.StringFixed(2)}
	default:
		return Envelope{}, fmt.Errorf("unsupported event %s", event.EventName())
	}
	return envelope, nil
}
