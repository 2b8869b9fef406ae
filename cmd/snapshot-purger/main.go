package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	blobpostgres "github.com/Apurer/go-gin-storefront/internal/platform/blobstore/postgres"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

// defaultSnapshotTTL keeps abandoned carts for a quarter.
const defaultSnapshotTTL = 90 * 24 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup, err := platformpostgres.Open(ctx, os.Getenv("POSTGRES_DSN"), logger)
	if err != nil {
		log.Fatalf("cannot purge snapshots: %v", err)
	}
	defer cleanup()

	ttl := snapshotTTLFromEnv()
	purged, err := blobpostgres.NewStore(db).PurgeStale(ctx, time.Now().Add(-ttl))
	if err != nil {
		log.Fatalf("failed to purge snapshots: %v", err)
	}
	logger.Info("snapshot purge completed", slog.Int64("purged", purged), slog.Duration("ttl", ttl))
}

func snapshotTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SNAPSHOT_TTL_HOURS"))
	if raw == "" {
		return defaultSnapshotTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return defaultSnapshotTTL
	}
	return time.Duration(hours) * time.Hour
}
