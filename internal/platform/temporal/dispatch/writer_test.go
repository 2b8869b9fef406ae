package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	snapshotactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/snapshots"
	snapshotworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/snapshots"
)

func TestBuildWorkflowID_HidesKeyAndIsUniquePerRevision(t *testing.T) {
	first := buildWorkflowID("alice:luxe-cart", 41)
	second := buildWorkflowID("alice:luxe-cart", 42)

	assert.True(t, strings.HasPrefix(first, "snapshot-write-"))
	assert.True(t, strings.HasSuffix(first, "-41"))
	assert.NotContains(t, first, "alice")
	assert.NotEqual(t, first, second)
	assert.Equal(t, first[:len("snapshot-write-")+16], second[:len("snapshot-write-")+16])
	assert.Equal(t, first, buildWorkflowID("alice:luxe-cart", 41))
}

func TestWorkflowTraceID(t *testing.T) {
	assert.Empty(t, workflowTraceID(context.Background()))

	traceID, err := oteltrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := oteltrace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := oteltrace.ContextWithSpanContext(context.Background(), oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", workflowTraceID(ctx))
}

func TestPut_RequiresClient(t *testing.T) {
	var w *TemporalWriter
	assert.Error(t, w.Put(context.Background(), "k", 1, nil))
}

func TestPut_StartsWriteWorkflowAndWaits(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, nil).Return(nil).Once()
	temporalClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
			return o.TaskQueue == snapshotworkflows.SnapshotTaskQueue &&
				o.WorkflowIDReusePolicy == enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE &&
				o.ID == buildWorkflowID("alice:luxe-cart", 7)
		}),
		snapshotworkflows.SnapshotWriteWorkflowName,
		snapshotworkflows.SnapshotWriteWorkflowInput{
			Write: snapshotactivities.SnapshotWrite{Key: "alice:luxe-cart", Revision: 7, Payload: []byte(`{"version":1}`)},
		},
	).Return(run, nil).Once()

	w := NewTemporalWriter(temporalClient)
	require.NoError(t, w.Put(context.Background(), "alice:luxe-cart", 7, []byte(`{"version":1}`)))

	temporalClient.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestPut_RejectsEmptyKey(t *testing.T) {
	w := NewTemporalWriter(&mocks.Client{})
	assert.Error(t, w.Put(context.Background(), " ", 1, nil))
}
