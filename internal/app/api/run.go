package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	kioskserver "github.com/Apurer/ramen-kiosk/go"
	kioskmemory "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/memory"
	kioskobs "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/observability"
	kioskpostgres "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/persistence/postgres"
	kioskworkflows "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/workflows"
	kioskapp "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
	"github.com/Apurer/ramen-kiosk/internal/platform/auth"
	"github.com/Apurer/ramen-kiosk/internal/platform/catalogseed"
	platformobservability "github.com/Apurer/ramen-kiosk/internal/platform/observability"
	apierrors "github.com/Apurer/ramen-kiosk/internal/shared/errors"
)

const serviceName = "ramen-kiosk-api"

// Run boots the kiosk HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings := platformobservability.SettingsFromEnv(serviceName)
	settings.Environment = cfg.AppEnv
	settings.LogLevel = cfg.LogLevel
	settings.TraceExporter = cfg.TraceExporter
	instruments, shutdown, err := platformobservability.Init(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	seed, err := catalogseed.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}
	kiosk, err := seed.NewKiosk()
	if err != nil {
		return fmt.Errorf("open kiosk session: %w", err)
	}

	journal, closeJournal, err := OpenJournal(ctx, cfg, logger)
	if err != nil {
		logger.Warn("postgres journal unavailable, falling back to memory", slog.String("error", err.Error()))
		journal, closeJournal = kioskmemory.NewJournal(), func() {}
	}
	defer closeJournal()
	publisher, closePublisher := OpenPublisher(cfg, logger)
	defer closePublisher()
	followUp, closeFollowUp := buildFollowUp(cfg, instruments, journal, publisher)
	defer closeFollowUp()

	core := kioskapp.NewService(kiosk,
		kioskapp.WithJournal(journal),
		kioskapp.WithPublisher(publisher),
		kioskapp.WithFollowUp(followUp),
		kioskapp.WithLogger(logger),
	)
	service := kioskobs.New(core,
		kioskobs.WithLogger(logger),
		kioskobs.WithTracer(instruments.Tracer("internal.kiosk.application")),
		kioskobs.WithMeter(instruments.Meter("internal.kiosk.application")),
	)

	router, err := buildRouter(cfg, service, logger)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("kiosk API listening", slog.String("addr", server.Addr), slog.Int("ingredients", len(seed.Ingredients)))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("kiosk API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down kiosk API", slog.Duration("timeout", cfg.ShutdownTimeout))
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func buildFollowUp(cfg Config, instruments *platformobservability.Instruments, journal ports.OrderJournal, publisher ports.EventPublisher) (ports.OrderFollowUp, func()) {
	logger := effectiveLogger(instruments)
	if _, durable := journal.(*kioskpostgres.Journal); !durable {
		logger.Warn("order journal is not shared with the worker, running order follow-up inline")
		return kioskworkflows.NewInlineOrderFollowUp(journal, publisher), func() {}
	}
	temporalClient, err := DialTemporal(cfg, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running order follow-up inline", slog.String("error", err.Error()))
		return kioskworkflows.NewInlineOrderFollowUp(journal, publisher), func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return kioskworkflows.NewTemporalOrderFollowUp(temporalClient), temporalClient.Close
}

func buildRouter(cfg Config, service ports.Service, logger *slog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	if err := corsConfig.Validate(); err != nil {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS: %w", err)
	}

	engine := gin.New()
	engine.Use(apierrors.Recovery(logger), otelgin.Middleware(serviceName), cors.New(corsConfig))

	handlers := kioskserver.ApiHandleFunctions{
		KioskAPI:       kioskserver.NewKioskAPI(service),
		MaintenanceAPI: kioskserver.NewMaintenanceAPI(service),
	}
	if cfg.OperatorJWTSecret != "" {
		verifier, err := auth.NewVerifier(cfg.OperatorJWTSecret)
		if err != nil {
			return nil, err
		}
		handlers.OperatorGuard = kioskserver.OperatorAuth(verifier)
	} else {
		logger.Warn("OPERATOR_JWT_SECRET not set, maintenance routes are unauthenticated")
	}
	return kioskserver.NewRouterWithGinEngine(engine, handlers), nil
}
