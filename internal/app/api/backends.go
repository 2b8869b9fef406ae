package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
	blobfirestore "github.com/Apurer/go-gin-storefront/internal/platform/blobstore/firestore"
	blobmemory "github.com/Apurer/go-gin-storefront/internal/platform/blobstore/memory"
	blobpostgres "github.com/Apurer/go-gin-storefront/internal/platform/blobstore/postgres"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

// ConnectDatabase opens postgres when a DSN is configured, migrates it, and seeds
// the catalog. It returns a nil DB when no DSN is set or the connection fails and
// the snapshot backend does not need it.
func ConnectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory catalog")
		return nil, func() {}, nil
	}
	db, cleanup, err := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if err == nil {
		err = migrations.Run(db)
	}
	if err == nil {
		err = migrations.SeedCatalog(ctx, db)
	}
	if err != nil {
		cleanup()
		if cfg.SnapshotBackend == BackendPostgres {
			return nil, func() {}, fmt.Errorf("postgres snapshot backend unavailable: %w", err)
		}
		logger.Warn("failed to prepare postgres, falling back to in-memory catalog", slog.String("error", err.Error()))
		return nil, func() {}, nil
	}
	return db, cleanup, nil
}

// BuildCatalogRepository prefers postgres and falls back to the seeded memory catalog.
func BuildCatalogRepository(db *gorm.DB, logger *slog.Logger) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	logger.Info("catalog repository configured with postgres")
	return catalogpostgres.NewRepository(db)
}

// OpenSnapshotBackend builds the backend named by cfg.SnapshotBackend.
func OpenSnapshotBackend(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (blobstore.Backend, func(), error) {
	switch cfg.SnapshotBackend {
	case BackendPostgres:
		if db == nil {
			return nil, func() {}, errors.New("postgres snapshot backend requires a database connection")
		}
		logger.Info("snapshot backend configured with postgres")
		return blobpostgres.NewStore(db), func() {}, nil
	case BackendFirestore:
		fsClient, err := firestore.NewClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, func() {}, fmt.Errorf("firestore client (project=%s): %w", cfg.FirestoreProjectID, err)
		}
		logger.Info("snapshot backend configured with firestore", slog.String("project", cfg.FirestoreProjectID))
		return blobfirestore.NewStore(fsClient, cfg.FirestoreCollection), func() { _ = fsClient.Close() }, nil
	default:
		logger.Warn("snapshot backend is in-memory; carts and wishlists are lost on restart")
		return blobmemory.NewStore(), func() {}, nil
	}
}

// DialTemporal connects a Temporal client with tracing and structured logging.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
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
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
