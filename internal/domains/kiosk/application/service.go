package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

// Service orchestrates the kiosk use cases over a single session.
type Service struct {
	kiosk     *domain.Kiosk
	journal   ports.OrderJournal
	publisher ports.EventPublisher
	followUp  ports.OrderFollowUp
	logger    *slog.Logger
}

type Option func(*Service)

// WithJournal enables the operator journal views.
func WithJournal(journal ports.OrderJournal) Option {
	return func(s *Service) {
		s.journal = journal
	}
}

// WithPublisher announces restock and revenue collection events.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithFollowUp hands every committed order to the given follow-up.
func WithFollowUp(followUp ports.OrderFollowUp) Option {
	return func(s *Service) {
		s.followUp = followUp
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the kiosk service around an existing session.
func NewService(kiosk *domain.Kiosk, opts ...Option) *Service {
	s := &Service{
		kiosk:  kiosk,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ListIngredients(_ context.Context) ([]domain.Ingredient, error) {
	return s.kiosk.ListIngredients(), nil
}

func (s *Service) ListDishes(_ context.Context) ([]domain.Dish, error) {
	return s.kiosk.ListDishes(), nil
}

// Quote prices a selection against the live catalog.
func (s *Service) Quote(_ context.Context, input types.QuoteInput) (domain.Quote, error) {
	spec, err := s.composeDish(input.Dish, input.Lines)
	if err != nil {
		return domain.Quote{}, mapError(err)
	}
	quote, err := s.kiosk.Quote(spec.Selection)
	if err != nil {
		return domain.Quote{}, mapError(err)
	}
	return quote, nil
}

// PlaceOrder commits an order and then runs its follow-up. Follow-up failures
// are logged and never affect the committed order.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (domain.Receipt, error) {
	spec, err := s.composeDish(input.Dish, input.Lines)
	if err != nil {
		return domain.Receipt{}, mapError(err)
	}
	cash, err := parseCash(input.Cash)
	if err != nil {
		return domain.Receipt{}, mapError(err)
	}
	receipt, record, err := s.kiosk.PlaceOrder(spec, cash)
	if err != nil {
		return domain.Receipt{}, mapError(err)
	}
	if s.followUp != nil {
		if err := s.followUp.OrderCommitted(context.WithoutCancel(ctx), record); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "order follow-up failed",
				slog.String("order.id", record.ID.String()), slog.String("error", err.Error()))
		}
	}
	return receipt, nil
}

// Restock tops up an ingredient and announces the new level.
func (s *Service) Restock(ctx context.Context, input types.RestockInput) (domain.Ingredient, error) {
	updated, err := s.kiosk.Restock(input.Ingredient, input.Amount)
	if err != nil {
		return domain.Ingredient{}, mapError(err)
	}
	s.publish(ctx, domain.IngredientRestocked{
		BaseEvent:  domain.BaseEvent{Timestamp: s.kiosk.Now()},
		Ingredient: updated.Name,
		Requested:  input.Amount,
		Stock:      updated.Stock,
	})
	return updated, nil
}

// CollectRevenue empties the cash box and returns what it held.
func (s *Service) CollectRevenue(ctx context.Context) (decimal.Decimal, error) {
	amount := s.kiosk.CollectRevenue()
	s.publish(ctx, domain.RevenueCollected{
		BaseEvent: domain.BaseEvent{Timestamp: s.kiosk.Now()},
		Amount:    amount,
	})
	return amount, nil
}

func (s *Service) Revenue(_ context.Context) (decimal.Decimal, error) {
	return s.kiosk.Revenue(), nil
}

func (s *Service) History(_ context.Context) ([]domain.OrderRecord, error) {
	return s.kiosk.History(), nil
}

// Journal returns every durably recorded order plus totals.
func (s *Service) Journal(ctx context.Context) (types.JournalView, error) {
	if s.journal == nil {
		return types.JournalView{}, ports.ErrJournalUnavailable
	}
	entries, err := s.journal.List(ctx)
	if err != nil {
		return types.JournalView{}, err
	}
	summary, err := s.journal.Summary(ctx)
	if err != nil {
		return types.JournalView{}, err
	}
	return types.JournalView{Entries: entries, Summary: summary}, nil
}

func (s *Service) JournalEntry(ctx context.Context, input types.JournalEntryInput) (types.OrderProjection, error) {
	if s.journal == nil {
		return types.OrderProjection{}, ports.ErrJournalUnavailable
	}
	id, err := uuid.Parse(strings.TrimSpace(input.OrderID))
	if err != nil {
		return types.OrderProjection{}, fmt.Errorf("%w: order id %q", ErrInvalidInput, input.OrderID)
	}
	return s.journal.Get(ctx, id)
}

func (s *Service) composeDish(name string, lines []types.LineInput) (domain.DishSpec, error) {
	dish, err := s.kiosk.Dish(name)
	if err != nil {
		return domain.DishSpec{}, err
	}
	selection, err := buildSelection(lines)
	if err != nil {
		return domain.DishSpec{}, err
	}
	return dish.Compose(selection)
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "event publish failed",
			slog.String("event", event.EventName()), slog.String("error", err.Error()))
	}
}

func buildSelection(lines []types.LineInput) (domain.Selection, error) {
	out := make([]domain.Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, domain.Line{Ingredient: line.Ingredient, Quantity: line.Quantity})
	}
	return domain.NewSelection(out...)
}

func parseCash(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: cash is required", domain.ErrInvalidPayment)
	}
	cash, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: non-numeric cash %q", domain.ErrInvalidPayment, raw)
	}
	return cash, nil
}

var _ ports.Service = (*Service)(nil)
