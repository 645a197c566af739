package provision

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureReporter struct {
	events  []Event
	results []Result
	err     error
}

func (r *captureReporter) Report(_ context.Context, event Event, result Result) error {
	r.events = append(r.events, event)
	r.results = append(r.results, result)
	return r.err
}

// panicIdentity blows up on the first store call to exercise the
// exactly-once report guarantee.
type panicIdentity struct {
	fakeIdentity
}

func (panicIdentity) CreateUser(context.Context, string) (CreateOutcome, error) {
	panic("identity store client not initialized")
}

func newTestHandler(t *testing.T, reporter Reporter) *Handler {
	t.Helper()
	engine, _, _, _ := newTestEngine(t)
	return NewHandler(engine, reporter, testGroups, zerolog.Nop())
}

func TestHandleReportsExactlyOnce(t *testing.T) {
	reporter := &captureReporter{}
	handler := newTestHandler(t, reporter)

	err := handler.Handle(context.Background(), Event{
		RequestType:        RequestCreate,
		LogicalResourceID:  "StackUsers",
		ResourceProperties: map[string]any{"Admins": "alice"},
	})

	require.NoError(t, err)
	require.Len(t, reporter.results, 1)
	assert.Equal(t, StatusSuccess, reporter.results[0].Status)
	assert.Equal(t, "alice", reporter.results[0].Data["UsersCreated"])
}

func TestHandleReportsMalformedInputAsFailure(t *testing.T) {
	reporter := &captureReporter{}
	handler := newTestHandler(t, reporter)

	err := handler.Handle(context.Background(), Event{
		RequestType:        RequestCreate,
		ResourceProperties: map[string]any{"Admins": 42},
	})

	require.NoError(t, err)
	require.Len(t, reporter.results, 1)
	assert.Equal(t, StatusFailed, reporter.results[0].Status)
	assert.Contains(t, reporter.results[0].Reason, "malformed_input")
}

func TestHandleReportsFailureOnPanic(t *testing.T) {
	reporter := &captureReporter{}
	log := &opLog{}
	engine := NewEngine(&panicIdentity{}, newFakeSecrets(log))
	handler := NewHandler(engine, reporter, testGroups, zerolog.Nop())

	err := handler.Handle(context.Background(), Event{
		RequestType:        RequestCreate,
		ResourceProperties: map[string]any{"Admins": "alice"},
	})

	require.NoError(t, err)
	require.Len(t, reporter.results, 1)
	assert.Equal(t, StatusFailed, reporter.results[0].Status)
	assert.Contains(t, reporter.results[0].Reason, "panicked")
}

func TestHandleSurfacesCallbackDeliveryError(t *testing.T) {
	reporter := &captureReporter{err: ErrTransient("callback endpoint unreachable")}
	handler := newTestHandler(t, reporter)

	err := handler.Handle(context.Background(), Event{
		RequestType:        RequestDelete,
		ResourceProperties: map[string]any{},
	})

	require.Error(t, err)
	assert.True(t, IsCategory(err, ErrCategoryTransient))
}
