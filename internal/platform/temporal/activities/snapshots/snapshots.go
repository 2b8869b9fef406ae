package snapshots

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
)

// WriteSnapshotActivityName stores one encoded snapshot in the blob store.
const WriteSnapshotActivityName = "snapshots.activities.WriteSnapshot"

// SnapshotWrite is the activity payload: a fully scoped key, the encoded state
// and the revision that orders it against other writes to the same key.
type SnapshotWrite struct {
	Key      string
	Revision int64
	Payload  []byte
}

// Activities writes snapshots on behalf of workflows.
type Activities struct {
	backend blobstore.Backend
}

func NewActivities(backend blobstore.Backend) *Activities {
	return &Activities{backend: backend}
}

// WriteSnapshot stores the payload under input.Key. Replays are harmless since
// every write carries the whole snapshot, and a late attempt cannot replace a
// payload with a higher revision.
func (a *Activities) WriteSnapshot(ctx context.Context, input SnapshotWrite) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.backend == nil {
		logger.Error("snapshot activity not initialized", "key", input.Key)
		return errors.New("snapshot activity not initialized")
	}
	if err := blobstore.ValidateKey(input.Key); err != nil {
		return err
	}
	logger.Debug("WriteSnapshot activity started", "key", input.Key, "revision", input.Revision, "bytes", len(input.Payload))
	if err := a.backend.Put(ctx, input.Key, input.Revision, input.Payload); err != nil {
		logger.Error("WriteSnapshot activity failed", "key", input.Key, "error", err)
		return err
	}
	logger.Info("WriteSnapshot activity completed", "key", input.Key)
	return nil
}
