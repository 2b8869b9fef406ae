// Package dispatch routes snapshot writes through Temporal so they survive
// backend outages longer than a single request.
package dispatch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
	snapshotactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/snapshots"
	snapshotworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/snapshots"
	"github.com/Apurer/go-gin-storefront/internal/shared/statestore"
)

var _ statestore.Writer = (*TemporalWriter)(nil)

// TemporalWriter starts one snapshot write workflow per Put and waits for it.
// A run keeps retrying after Put gives up waiting, so it can land after a newer
// write for the same key; the backend then keeps the higher revision.
type TemporalWriter struct {
	client    client.Client
	taskQueue string
}

func NewTemporalWriter(c client.Client) *TemporalWriter {
	return &TemporalWriter{client: c, taskQueue: snapshotworkflows.SnapshotTaskQueue}
}

func (w *TemporalWriter) Put(ctx context.Context, key string, revision int64, payload []byte) error {
	if w == nil || w.client == nil {
		return errors.New("temporal snapshot writer not configured")
	}
	if err := blobstore.ValidateKey(key); err != nil {
		return err
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:                    buildWorkflowID(key, revision),
		TaskQueue:             w.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := w.client.ExecuteWorkflow(ctx, options, snapshotworkflows.SnapshotWriteWorkflowName,
		snapshotworkflows.SnapshotWriteWorkflowInput{
			Write:   snapshotactivities.SnapshotWrite{Key: key, Revision: revision, Payload: payload},
			TraceID: traceID,
		})
	if err != nil {
		return fmt.Errorf("start snapshot write for %s: %w", key, err)
	}
	return run.Get(ctx, nil)
}

// buildWorkflowID hashes the key so shopper ids do not leak into workflow listings.
// One id per revision makes a repeated start of the same write a duplicate.
func buildWorkflowID(key string, revision int64) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("snapshot-write-%s-%d", hex.EncodeToString(sum[:8]), revision)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
