package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"

	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	sessionsapp "github.com/Apurer/go-gin-storefront/internal/domains/sessions/application"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	"github.com/Apurer/go-gin-storefront/internal/platform/temporal/dispatch"
)

const (
	serviceName     = "storefront-api"
	shutdownTimeout = 10 * time.Second
)

// Run boots the storefront HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	db, closeDB, err := ConnectDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	catalog := catalogobs.New(
		catalogapp.NewService(BuildCatalogRepository(db, logger)),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	backend, closeBackend, err := OpenSnapshotBackend(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	registryOpts := []sessionsapp.Option{
		sessionsapp.WithLogger(logger),
		sessionsapp.WithTracer(instruments.Tracer("internal.sessions.application")),
		sessionsapp.WithMeter(instruments.Meter("internal.sessions.application")),
		sessionsapp.WithWriteTimeout(cfg.SnapshotWriteTimeout),
	}
	if cfg.SnapshotBackend == BackendMemory {
		logger.Info("durable snapshot writes skipped for the in-memory backend")
	} else if temporalClient, err := DialTemporal(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, writing snapshots directly", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		registryOpts = append(registryOpts, sessionsapp.WithWriter(dispatch.NewTemporalWriter(temporalClient)))
		logger.Info("Temporal snapshot writes enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	registry := sessionsapp.NewRegistry(backend, registryOpts...)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := registry.Close(closeCtx); err != nil {
			logger.Error("failed to flush sessions", slog.String("error", err.Error()))
		}
	}()

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go purgeIdleSessions(purgeCtx, registry, cfg.SessionIdle, logger)

	gin.SetMode(gin.ReleaseMode)
	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI:  storefrontserver.NewCatalogAPI(catalog),
		CartAPI:     storefrontserver.NewCartAPI(catalog),
		WishlistAPI: storefrontserver.NewWishlistAPI(catalog),
		EventsAPI:   storefrontserver.NewEventsAPI(registry, cfg.AllowedOrigins, logger),
	}
	router := storefrontserver.NewRouter(handlers, storefrontserver.RouterOptions{
		Sessions:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.SecureCookies,
		Middleware:     []gin.HandlerFunc{otelgin.Middleware(serviceName)},
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down storefront API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// idlePurger is the slice of the session registry the purge loop needs.
type idlePurger interface {
	PurgeIdle(ctx context.Context, olderThan time.Duration) (int, error)
}

// purgeIdleSessions evicts idle sessions every half idle period until ctx ends.
func purgeIdleSessions(ctx context.Context, registry idlePurger, idle time.Duration, logger *slog.Logger) {
	interval := idle / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := registry.PurgeIdle(ctx, idle)
			if err != nil {
				logger.Warn("idle session purge incomplete", slog.String("error", err.Error()))
			}
			if purged > 0 {
				logger.Info("idle sessions purged", slog.Int("count", purged))
			}
		}
	}
}
