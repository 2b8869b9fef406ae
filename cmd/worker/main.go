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

	"github.com/Apurer/go-gin-storefront/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	snapshotactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/snapshots"
	snapshotworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/snapshots"
)

func main() {
	ctx := context.Background()
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	if cfg.SnapshotBackend == api.BackendMemory {
		logger.Error("worker needs a shared snapshot backend; set SNAPSHOT_BACKEND to postgres or firestore")
		os.Exit(1)
	}
	db, closeDB, err := api.ConnectDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to prepare database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()
	backend, closeBackend, err := api.OpenSnapshotBackend(ctx, cfg, db, logger)
	if err != nil {
		logger.Error("failed to open snapshot backend", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeBackend()

	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	activities := snapshotactivities.NewActivities(backend)
	w := worker.New(temporalClient, snapshotworkflows.SnapshotTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(snapshotworkflows.SnapshotWriteWorkflow, workflow.RegisterOptions{Name: snapshotworkflows.SnapshotWriteWorkflowName})
	w.RegisterActivityWithOptions(activities.WriteSnapshot, activity.RegisterOptions{Name: snapshotactivities.WriteSnapshotActivityName})

	logger.Info("worker listening", slog.String("taskQueue", snapshotworkflows.SnapshotTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
