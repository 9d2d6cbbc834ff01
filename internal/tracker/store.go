package tracker

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cody-foxy/scanwatch/internal/scan"
)

// Store holds the view of the currently tracked scan. It is written only by
// the poll session that owns the current token and read by everything else
// through read-only snapshots, so there are no write-write races by
// construction.
//
// Every mutation entry point takes the session token handed out by Track;
// responses resolving for a superseded session carry a stale token and are
// discarded without effect.
type Store struct {
	mu           sync.RWMutex
	token        uuid.UUID
	scan         *scan.Scan
	terminal     bool
	transportErr error
}

// NewStore returns an empty Store tracking nothing.
func NewStore() *Store {
	return &Store{}
}

// Track begins tracking a new scan identifier, discarding any prior view,
// and returns the session token that authorizes subsequent mutations.
func (s *Store) Track(id int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = uuid.New()
	s.scan = &scan.Scan{ID: id, Status: scan.StatusCreated}
	s.terminal = false
	s.transportErr = nil
	return s.token
}

// Snapshot returns a copy of the tracked scan. The findings slice is copied
// so readers can never mutate the held record.
func (s *Store) Snapshot() (scan.Scan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scan == nil {
		return scan.Scan{}, false
	}
	snap := *s.scan
	if s.scan.Findings != nil {
		snap.Findings = make([]scan.Finding, len(s.scan.Findings))
		copy(snap.Findings, s.scan.Findings)
	}
	return snap, true
}

// Terminal reports whether the tracked scan has reached a terminal state or
// the session died on a transport error.
func (s *Store) Terminal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terminal
}

// TransportErr returns the transport failure that ended the session, if any.
// It is distinct from the job's own failed state.
func (s *Store) TransportErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transportErr
}

// ApplyStatus merges a status response into the tracked scan. The update is
// discarded when the token is stale or a terminal state was already applied,
// which keeps UI-visible state monotonic: the view never regresses out of
// completed or failed. Reports whether the update took effect.
func (s *Store) ApplyStatus(token uuid.UUID, upd *scan.Scan) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token || s.scan == nil || s.terminal {
		return false
	}
	s.scan.ApplyStatus(upd)
	if s.scan.Status.Terminal() {
		s.terminal = true
	}
	return true
}

// ApplyFindings replaces the findings batch wholesale. Unlike ApplyStatus it
// is legal after the terminal transition: the one findings fetch of a
// completing session lands here. Stale tokens are still discarded.
func (s *Store) ApplyFindings(token uuid.UUID, findings []scan.Finding) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token || s.scan == nil {
		return false
	}
	s.scan.ReplaceFindings(findings)
	return true
}

// SetTransportError records a fatal transport failure and ends the session.
// The scan's own status is left as last observed.
func (s *Store) SetTransportError(token uuid.UUID, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token || s.transportErr != nil {
		return false
	}
	s.transportErr = err
	s.terminal = true
	return true
}
