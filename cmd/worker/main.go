package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/Apurer/ramen-kiosk/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/ramen-kiosk/internal/durable/temporal/workflows/orders"

	"github.com/Apurer/ramen-kiosk/internal/app/api"
	platformobservability "github.com/Apurer/ramen-kiosk/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "ramen-kiosk-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	settings := platformobservability.SettingsFromEnv(serviceName)
	settings.Environment = cfg.AppEnv
	settings.LogLevel = cfg.LogLevel
	settings.TraceExporter = cfg.TraceExporter
	instruments, shutdown, err := platformobservability.Init(ctx, settings)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	if cfg.PostgresDSN == "" {
		logger.Error("worker requires POSTGRES_DSN, follow-ups must land in the journal the API reads")
		os.Exit(1)
	}

	journal, closeJournal, err := api.OpenJournal(ctx, cfg, logger)
	if err != nil {
		logger.Error("worker cannot open order journal", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeJournal()
	publisher, closePublisher := api.OpenPublisher(cfg, logger)
	defer closePublisher()
	acts := orderactivities.NewActivities(journal, publisher)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderFollowUpTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderFollowUpWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderFollowUpWorkflowName})
	w.RegisterActivityWithOptions(acts.JournalOrder, activity.RegisterOptions{Name: orderactivities.JournalOrderActivityName})
	w.RegisterActivityWithOptions(acts.PublishOrderCommitted, activity.RegisterOptions{Name: orderactivities.PublishOrderCommittedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderFollowUpTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
