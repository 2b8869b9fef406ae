package snapshots

import (
	"go.temporal.io/sdk/workflow"

	snapshotactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/snapshots"
	"github.com/Apurer/go-gin-storefront/internal/platform/temporal/sequences"
)

const (
	// SnapshotWriteWorkflowName is the public identifier for registering the workflow.
	SnapshotWriteWorkflowName = "snapshots.workflows.Write"
	// SnapshotTaskQueue is consumed by the worker processing snapshot writes.
	SnapshotTaskQueue = "SNAPSHOT_WRITES"
)

// SnapshotWriteWorkflowInput carries one snapshot write.
type SnapshotWriteWorkflowInput struct {
	Write   snapshotactivities.SnapshotWrite
	TraceID string
}

// SnapshotWriteWorkflow retries a snapshot write until the backend accepts it.
func SnapshotWriteWorkflow(ctx workflow.Context, input SnapshotWriteWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("SnapshotWriteWorkflow started", withTraceID(input.TraceID, "key", input.Write.Key)...)

	err := sequences.RunSnapshotWriteSequence(ctx, input.Write)
	if err != nil {
		logger.Error("SnapshotWriteWorkflow failed", withTraceID(input.TraceID, "key", input.Write.Key, "error", err)...)
		return err
	}
	logger.Info("SnapshotWriteWorkflow completed", withTraceID(input.TraceID, "key", input.Write.Key)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
