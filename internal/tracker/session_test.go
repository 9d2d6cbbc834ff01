package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/pkg/shared/errors"
)

// scriptedAPI replays a fixed sequence of status responses and serves one
// findings batch.
type scriptedAPI struct {
	mu           sync.Mutex
	statuses     []*scan.Scan
	statusErr    error
	findings     []scan.Finding
	findingsErr  error
	statusCalls  int
	findingCalls int
}

func (a *scriptedAPI) GetScan(ctx context.Context, id int) (*scan.Scan, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statusCalls++
	if a.statusErr != nil {
		return nil, a.statusErr
	}
	idx := a.statusCalls - 1
	if idx >= len(a.statuses) {
		idx = len(a.statuses) - 1
	}
	upd := *a.statuses[idx]
	return &upd, nil
}

func (a *scriptedAPI) GetFindings(ctx context.Context, id int, severity string) ([]scan.Finding, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.findingCalls++
	if a.findingsErr != nil {
		return nil, a.findingsErr
	}
	return a.findings, nil
}

func (a *scriptedAPI) calls() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusCalls, a.findingCalls
}

func newTestSession(store *Store, api API, id int) *Session {
	return NewSession(store, api, id, 5*time.Millisecond, hclog.NewNullLogger())
}

func TestSessionHappyPath(t *testing.T) {
	// scan 7: running 3/10 on the first poll, completed on the second, then
	// a findings fetch returning one critical and one low finding
	api := &scriptedAPI{
		statuses: []*scan.Scan{
			{ID: 7, Status: scan.StatusRunning, FilesScanned: 3, TotalFiles: 10},
			{ID: 7, Status: scan.StatusCompleted, FilesScanned: 10, TotalFiles: 10, TotalFindings: 2, CriticalCount: 1, LowCount: 1},
		},
		findings: []scan.Finding{
			{ID: 1, Severity: "critical"},
			{ID: 2, Severity: "low"},
		},
	}

	store := NewStore()
	session := newTestSession(store, api, 7)

	done := session.pollOnce(context.Background())
	assert.False(t, done)

	snap, ok := store.Snapshot()
	require.True(t, ok)
	assert.Equal(t, scan.StatusRunning, snap.Status)
	assert.Equal(t, 3, snap.FilesScanned)
	assert.Equal(t, 10, snap.TotalFiles)
	assert.Empty(t, snap.Findings, "findings stay empty while running")

	done = session.pollOnce(context.Background())
	assert.True(t, done, "terminal status ends the session")

	snap, _ = store.Snapshot()
	assert.Equal(t, scan.StatusCompleted, snap.Status)
	assert.Equal(t, 2, snap.TotalFindings)
	assert.Equal(t, 1, snap.CriticalCount)
	assert.Equal(t, 1, snap.LowCount)
	require.Len(t, snap.Findings, 2)

	statusCalls, findingCalls := api.calls()
	assert.Equal(t, 2, statusCalls)
	assert.Equal(t, 1, findingCalls, "findings are fetched exactly once")
}

func TestSessionTerminalLock(t *testing.T) {
	// tick sequence [running, completed, running]: the third response must
	// be ignored even if something drives another poll
	api := &scriptedAPI{
		statuses: []*scan.Scan{
			{ID: 7, Status: scan.StatusRunning},
			{ID: 7, Status: scan.StatusCompleted},
			{ID: 7, Status: scan.StatusRunning},
		},
	}

	store := NewStore()
	session := newTestSession(store, api, 7)

	assert.False(t, session.pollOnce(context.Background()))
	assert.True(t, session.pollOnce(context.Background()))
	assert.True(t, session.pollOnce(context.Background()))

	snap, _ := store.Snapshot()
	assert.Equal(t, scan.StatusCompleted, snap.Status, "never regresses out of a terminal state")
}

func TestSessionRemoteFailure(t *testing.T) {
	api := &scriptedAPI{
		statuses: []*scan.Scan{
			{ID: 9, Status: scan.StatusFailed, ErrorMessage: "clone failed: repository not found"},
		},
	}

	store := NewStore()
	session := newTestSession(store, api, 9)

	done := session.pollOnce(context.Background())
	assert.True(t, done)

	var remoteErr *errors.RemoteFailureError
	require.ErrorAs(t, session.err, &remoteErr)
	assert.Equal(t, "clone failed: repository not found", remoteErr.Message)

	// failed scans never have findings, so no second fetch happens
	_, findingCalls := api.calls()
	assert.Equal(t, 0, findingCalls)

	snap, _ := store.Snapshot()
	assert.Equal(t, scan.StatusFailed, snap.Status)
	assert.Equal(t, "clone failed: repository not found", snap.ErrorMessage)
}

func TestSessionTransportErrorStopsImmediately(t *testing.T) {
	fetchErr := errors.NewTransportError("get scan", "connection refused", nil)
	api := &scriptedAPI{statusErr: fetchErr}

	store := NewStore()
	session := newTestSession(store, api, 7)

	done := session.pollOnce(context.Background())
	assert.True(t, done, "transport failure is fatal to the session, no retry")
	assert.Equal(t, fetchErr, store.TransportErr())
	assert.True(t, store.Terminal())
}

func TestSessionUnrecognizedStatusTreatedAsMalformed(t *testing.T) {
	api := &scriptedAPI{
		statuses: []*scan.Scan{{ID: 7, Status: scan.Status("archived")}},
	}

	store := NewStore()
	session := newTestSession(store, api, 7)

	done := session.pollOnce(context.Background())
	assert.True(t, done)
	assert.True(t, errors.IsTransport(store.TransportErr()))
}

func TestSessionFindingsFetchFailure(t *testing.T) {
	api := &scriptedAPI{
		statuses:    []*scan.Scan{{ID: 7, Status: scan.StatusCompleted}},
		findingsErr: errors.NewTransportError("get findings", "gateway timeout", nil),
	}

	store := NewStore()
	session := newTestSession(store, api, 7)

	done := session.pollOnce(context.Background())
	assert.True(t, done)

	// the completed status still lands, the error is surfaced alongside
	snap, _ := store.Snapshot()
	assert.Equal(t, scan.StatusCompleted, snap.Status)
	assert.Empty(t, snap.Findings)
	require.Error(t, store.TransportErr())
}

func TestSessionSupersededByNewSession(t *testing.T) {
	store := NewStore()

	// session tracking 41 is superseded by 42 before 41's fetch resolves
	apiOld := &scriptedAPI{
		statuses: []*scan.Scan{{ID: 41, Status: scan.StatusCompleted}},
		findings: []scan.Finding{{ID: 99, Severity: "critical"}},
	}
	old := newTestSession(store, apiOld, 41)

	apiNew := &scriptedAPI{
		statuses: []*scan.Scan{{ID: 42, Status: scan.StatusRunning, FilesScanned: 1, TotalFiles: 4}},
	}
	current := newTestSession(store, apiNew, 42)

	// 41's response resolves now, after 42 took over the store
	old.pollOnce(context.Background())
	current.pollOnce(context.Background())

	snap, ok := store.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 42, snap.ID)
	assert.Equal(t, scan.StatusRunning, snap.Status)
	assert.Empty(t, snap.Findings, "stale session must not mutate the store")
}

func TestSessionRunLoopStopsOnTerminal(t *testing.T) {
	api := &scriptedAPI{
		statuses: []*scan.Scan{
			{ID: 7, Status: scan.StatusRunning},
			{ID: 7, Status: scan.StatusCompleted},
		},
	}

	store := NewStore()
	session := newTestSession(store, api, 7)
	session.Start(context.Background())

	select {
	case <-session.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after reaching a terminal state")
	}

	assert.NoError(t, session.Err())
	statusCalls, _ := api.calls()
	assert.Equal(t, 2, statusCalls, "no fetches after the terminal transition")
}

func TestSessionCancel(t *testing.T) {
	api := &scriptedAPI{
		statuses: []*scan.Scan{{ID: 7, Status: scan.StatusRunning}},
	}

	store := NewStore()
	session := newTestSession(store, api, 7)
	session.Start(context.Background())

	time.Sleep(15 * time.Millisecond)
	session.Cancel()
	session.Cancel() // idempotent

	select {
	case <-session.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}

	assert.NoError(t, session.Err())
	calls, _ := api.calls()
	time.Sleep(20 * time.Millisecond)
	callsAfter, _ := api.calls()
	assert.Equal(t, calls, callsAfter, "no further fetches after cancellation")
}
