package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/pkg/shared/errors"
)

// API is the slice of the remote client a poll session needs.
type API interface {
	GetScan(ctx context.Context, id int) (*scan.Scan, error)
	GetFindings(ctx context.Context, id int, severity string) ([]scan.Finding, error)
}

// Session tracks one scan identifier through its lifecycle by polling the
// remote service on a fixed interval. Fetches are strictly sequential: the
// next tick is not serviced until the previous fetch has been applied.
//
// The session stops on its own when the scan reaches a terminal state or a
// fetch fails at the transport level; in the latter case it does not retry,
// the caller must re-initiate. Cancel stops the timer cooperatively without
// interrupting an in-flight fetch; a result resolving afterwards is rejected
// by the store's token check.
type Session struct {
	scanID   int
	token    uuid.UUID
	store    *Store
	api      API
	interval time.Duration
	logger   hclog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	err      error
}

// NewSession registers a new tracking session for scanID with the store,
// superseding whatever the store tracked before.
func NewSession(store *Store, api API, scanID int, interval time.Duration, logger hclog.Logger) *Session {
	return &Session{
		scanID:   scanID,
		token:    store.Track(scanID),
		store:    store,
		api:      api,
		interval: interval,
		logger:   logger.Named("session"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. The first fetch is issued immediately,
// subsequent ones on every interval tick.
func (s *Session) Start(ctx context.Context) {
	go s.run(ctx)
}

// Cancel invalidates the recurring timer. No further fetches are issued;
// safe to call multiple times and after the session has already stopped.
func (s *Session) Cancel() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Done is closed once the session has stopped polling for any reason.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that ended the session, if any. Valid after Done is
// closed. A transport failure or the job's own failed state both land here;
// cancellation and successful completion leave it nil.
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	if s.pollOnce(ctx) {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session context cancelled", "scan_id", s.scanID)
			return
		case <-s.stop:
			s.logger.Debug("session cancelled", "scan_id", s.scanID)
			return
		case <-ticker.C:
			if s.pollOnce(ctx) {
				return
			}
		}
	}
}

// pollOnce performs one status fetch and applies the result. It reports
// whether the session is over, either because the scan reached a terminal
// state or because the fetch failed.
func (s *Session) pollOnce(ctx context.Context) bool {
	upd, err := s.api.GetScan(ctx, s.scanID)
	if err != nil {
		s.logger.Error("status fetch failed, stopping session", "scan_id", s.scanID, "error", err)
		s.store.SetTransportError(s.token, err)
		s.err = err
		return true
	}

	if !upd.Status.Known() {
		err := errors.NewMalformedResponseError("get scan", "unrecognized status "+string(upd.Status))
		s.logger.Error("unrecognized scan status, stopping session", "scan_id", s.scanID, "status", upd.Status)
		s.store.SetTransportError(s.token, err)
		s.err = err
		return true
	}

	switch upd.Status {
	case scan.StatusCompleted:
		s.store.ApplyStatus(s.token, upd)
		return s.fetchFindings(ctx)

	case scan.StatusFailed:
		// failed scans never have findings, so no second fetch
		s.store.ApplyStatus(s.token, upd)
		s.err = errors.NewRemoteFailureError(s.scanID, upd.ErrorMessage)
		s.logger.Warn("scan failed remotely", "scan_id", s.scanID, "message", upd.ErrorMessage)
		return true

	default:
		// non-terminal: merge progress fields only, findings stay untouched
		s.store.ApplyStatus(s.token, upd)
		s.logger.Debug("scan in progress",
			"scan_id", s.scanID,
			"status", upd.Status,
			"files_scanned", upd.FilesScanned,
			"total_files", upd.TotalFiles)
		return false
	}
}

// fetchFindings performs the one findings fetch of a completing session.
func (s *Session) fetchFindings(ctx context.Context) bool {
	found, err := s.api.GetFindings(ctx, s.scanID, "")
	if err != nil {
		s.logger.Error("findings fetch failed", "scan_id", s.scanID, "error", err)
		s.store.SetTransportError(s.token, err)
		s.err = err
		return true
	}

	s.store.ApplyFindings(s.token, found)
	s.logger.Info("scan completed", "scan_id", s.scanID, "findings", len(found))
	return true
}
