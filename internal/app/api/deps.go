package api

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	kioskmemory "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/memory"
	kioskkafka "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/messaging/kafka"
	kioskpostgres "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/persistence/postgres"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
	platformkafka "github.com/Apurer/ramen-kiosk/internal/platform/kafka"
	"github.com/Apurer/ramen-kiosk/internal/platform/migrations"
	platformobservability "github.com/Apurer/ramen-kiosk/internal/platform/observability"
	platformpostgres "github.com/Apurer/ramen-kiosk/internal/platform/postgres"
)

// ErrTemporalDisabled is returned by DialTemporal when TEMPORAL_DISABLED is set.
var ErrTemporalDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// OpenJournal connects the Postgres journal and migrates its table.
// Without POSTGRES_DSN it returns the in-memory journal.
func OpenJournal(ctx context.Context, cfg Config, logger *slog.Logger) (ports.OrderJournal, func(), error) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, journaling orders in memory")
		return kioskmemory.NewJournal(), func() {}, nil
	}
	db, closeDB, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.DefaultOptions())
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db); err != nil {
		_ = closeDB()
		return nil, nil, err
	}
	logger.Info("order journal configured with postgres")
	return kioskpostgres.NewJournal(db), func() {
		if err := closeDB(); err != nil {
			logger.Warn("failed to close postgres pool", slog.String("error", err.Error()))
		}
	}, nil
}

// OpenPublisher returns the Kafka event publisher, or nil when no brokers are configured.
func OpenPublisher(cfg Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	writer, err := platformkafka.NewClient(cfg.KafkaBrokers).NewWriter(cfg.KafkaTopic)
	if err != nil {
		logger.Warn("KAFKA_BROKERS not set, kiosk events are not published")
		return nil, func() {}
	}
	publisher := kioskkafka.NewPublisher(writer)
	logger.Info("kafka publisher enabled", slog.String("topic", cfg.KafkaTopic))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close kafka writer", slog.String("error", err.Error()))
		}
	}
}

// DialTemporal connects a traced Temporal client logging through slog.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, ErrTemporalDisabled
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
