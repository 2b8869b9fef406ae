package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	snapshotactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/snapshots"
)

// SnapshotWriteActivityOptions bounds one write attempt and retries transient backend errors.
var SnapshotWriteActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 15 * time.Second,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    500 * time.Millisecond,
		BackoffCoefficient: 2.0,
		MaximumInterval:    5 * time.Second,
		MaximumAttempts:    5,
	},
}

// RunSnapshotWriteSequence writes one snapshot through the blob store activity.
func RunSnapshotWriteSequence(ctx workflow.Context, write snapshotactivities.SnapshotWrite) error {
	logger := workflow.GetLogger(ctx)
	logger.Debug("snapshot write sequence started", "key", write.Key)
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, SnapshotWriteActivityOptions), snapshotactivities.WriteSnapshotActivityName, write).Get(ctx, nil)
	if err != nil {
		logger.Error("snapshot write sequence failed", "key", write.Key, "error", err)
		return err
	}
	return nil
}
