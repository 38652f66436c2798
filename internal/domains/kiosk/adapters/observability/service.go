package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

const tracerName = "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/observability/service"

// Service decorates the kiosk service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core kiosk service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.ListIngredients")
	defer span.End()

	result, err := s.inner.ListIngredients(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list ingredients")
	}
	span.SetAttributes(attribute.Int("kiosk.ingredients.count", len(result)))
	return result, nil
}

func (s *Service) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.ListDishes")
	defer span.End()

	result, err := s.inner.ListDishes(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list dishes")
	}
	return result, nil
}

func (s *Service) Quote(ctx context.Context, input types.QuoteInput) (domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.Quote",
		trace.WithAttributes(attribute.String("kiosk.dish", input.Dish), attribute.Int("kiosk.lines", len(input.Lines))))
	defer span.End()

	result, err := s.inner.Quote(ctx, input)
	if err != nil {
		return domain.Quote{}, s.handleError(ctx, span, err, "failed to quote selection", slog.String("dish", input.Dish))
	}
	span.SetAttributes(attribute.String("kiosk.quote.total", result.TotalCost.StringFixed(2)))
	return result, nil
}

func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (domain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.PlaceOrder",
		trace.WithAttributes(attribute.String("kiosk.dish", input.Dish), attribute.Int("kiosk.lines", len(input.Lines))))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("dish", input.Dish), slog.Int("lines", len(input.Lines)))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, rejectionReason(err))
		return domain.Receipt{}, s.handleError(ctx, span, err, "order rejected", slog.String("reason", rejectionReason(err)))
	}
	span.SetAttributes(
		attribute.String("order.id", result.OrderID.String()),
		attribute.Int64("order.sequence", result.Sequence),
	)
	s.metrics.recordPlaced(ctx, result.Dish)
	s.logInfo(ctx, "order committed",
		slog.String("order.id", result.OrderID.String()),
		slog.Int64("order.sequence", result.Sequence),
		slog.String("total", result.TotalCost.StringFixed(2)),
		slog.String("change", result.Change.StringFixed(2)))
	return result, nil
}

func (s *Service) Restock(ctx context.Context, input types.RestockInput) (domain.Ingredient, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.Restock",
		trace.WithAttributes(attribute.String("kiosk.ingredient", input.Ingredient), attribute.Int("kiosk.restock.amount", input.Amount)))
	defer span.End()

	s.logInfo(ctx, "restocking ingredient", slog.String("ingredient", input.Ingredient), slog.Int("amount", input.Amount))
	result, err := s.inner.Restock(ctx, input)
	if err != nil {
		return domain.Ingredient{}, s.handleError(ctx, span, err, "failed to restock ingredient", slog.String("ingredient", input.Ingredient))
	}
	s.metrics.recordRestock(ctx, result.Name)
	s.logInfo(ctx, "ingredient restocked", slog.String("ingredient", result.Name), slog.Int("stock", result.Stock))
	return result, nil
}

func (s *Service) CollectRevenue(ctx context.Context) (decimal.Decimal, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.CollectRevenue")
	defer span.End()

	result, err := s.inner.CollectRevenue(ctx)
	if err != nil {
		return decimal.Decimal{}, s.handleError(ctx, span, err, "failed to collect revenue")
	}
	s.metrics.recordCollection(ctx)
	s.logInfo(ctx, "revenue collected", slog.String("amount", result.StringFixed(2)))
	return result, nil
}

func (s *Service) Revenue(ctx context.Context) (decimal.Decimal, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.Revenue")
	defer span.End()

	result, err := s.inner.Revenue(ctx)
	if err != nil {
		return decimal.Decimal{}, s.handleError(ctx, span, err, "failed to read revenue")
	}
	return result, nil
}

func (s *Service) History(ctx context.Context) ([]domain.OrderRecord, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.History")
	defer span.End()

	result, err := s.inner.History(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to read order history")
	}
	span.SetAttributes(attribute.Int("kiosk.history.count", len(result)))
	return result, nil
}

func (s *Service) Journal(ctx context.Context) (types.JournalView, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.Journal")
	defer span.End()

	result, err := s.inner.Journal(ctx)
	if err != nil {
		return types.JournalView{}, s.handleError(ctx, span, err, "failed to read order journal")
	}
	span.SetAttributes(attribute.Int64("kiosk.journal.orders", result.Summary.Orders))
	return result, nil
}

func (s *Service) JournalEntry(ctx context.Context, input types.JournalEntryInput) (types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "KioskService.JournalEntry", trace.WithAttributes(attribute.String("order.id", input.OrderID)))
	defer span.End()

	result, err := s.inner.JournalEntry(ctx, input)
	if err != nil {
		return types.OrderProjection{}, s.handleError(ctx, span, err, "failed to load journal entry", slog.String("order.id", input.OrderID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInsufficientPayment):
		return "insufficient_payment"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownDish):
		return "not_found"
	case domain.IsValidation(err):
		return "invalid_input"
	default:
		return "error"
	}
}

type serviceMetrics struct {
	ordersPlaced       metric.Int64Counter
	ordersRejected     metric.Int64Counter
	restocks           metric.Int64Counter
	revenueCollections metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("kiosk.service.orders_placed", metric.WithDescription("Number of orders committed"))
	ordersRejected, _ := m.Int64Counter("kiosk.service.orders_rejected", metric.WithDescription("Number of orders rejected by reason"))
	restocks, _ := m.Int64Counter("kiosk.service.restocks", metric.WithDescription("Number of restock operations"))
	revenueCollections, _ := m.Int64Counter("kiosk.service.revenue_collections", metric.WithDescription("Number of cash box collections"))
	return serviceMetrics{
		ordersPlaced:       ordersPlaced,
		ordersRejected:     ordersRejected,
		restocks:           restocks,
		revenueCollections: revenueCollections,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, dish string) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("kiosk.dish", dish)))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func (m serviceMetrics) recordRestock(ctx context.Context, ingredient string) {
	if m.restocks != nil {
		m.restocks.Add(ctx, 1, metric.WithAttributes(attribute.String("kiosk.ingredient", ingredient)))
	}
}

func (m serviceMetrics) recordCollection(ctx context.Context) {
	if m.revenueCollections != nil {
		m.revenueCollections.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
