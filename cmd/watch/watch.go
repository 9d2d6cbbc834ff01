package watch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/cody-foxy/scanwatch/internal/history"
	"github.com/cody-foxy/scanwatch/internal/remote"
	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/internal/tracker"
	"github.com/cody-foxy/scanwatch/internal/ui"
	"github.com/cody-foxy/scanwatch/pkg/shared/config"
	"github.com/cody-foxy/scanwatch/pkg/shared/logger"
)

var (
	AppConfig         *config.Config
	exampleWatchUsage = `  # Track scan 42 until it completes or fails
  scanwatch watch 42`
)

// WatchCmd tracks an existing scan through its lifecycle.
var WatchCmd = &cobra.Command{
	Use:                   "watch SCAN_ID",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleWatchUsage,
	Short:                 "Poll a scan until it reaches a terminal state and show its findings",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runWatchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runWatchCommand executes the watch command.
func runWatchCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-watch")

	scanID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid scan id %q: %w", args[0], err)
	}

	client := remote.NewClient(AppConfig, log)
	return Track(cmd.Context(), AppConfig, log, client, scanID)
}

// Track runs a full tracking session for scanID: poll to a terminal state,
// render progress and findings, and record the outcome in local history.
// Shared with the submit command's --watch mode.
func Track(ctx context.Context, cfg *config.Config, log hclog.Logger, client *remote.Client, scanID int) error {
	store := tracker.NewStore()
	session := tracker.NewSession(store, client, scanID, config.PollInterval(cfg), log)

	spinner := ui.StartSpinner(fmt.Sprintf("Tracking scan %d...", scanID))
	session.Start(ctx)

	progress := time.NewTicker(time.Second)
	defer progress.Stop()

waiting:
	for {
		select {
		case <-session.Done():
			break waiting
		case <-ctx.Done():
			session.Cancel()
			<-session.Done()
			break waiting
		case <-progress.C:
			if snap, ok := store.Snapshot(); ok && snap.Status == scan.StatusRunning {
				spinner.UpdateText(ui.ProgressLine(snap))
			}
		}
	}

	snap, ok := store.Snapshot()
	if !ok {
		_ = spinner.Stop()
		return fmt.Errorf("no scan state recorded for %d", scanID)
	}

	if err := session.Err(); err != nil {
		_ = spinner.Stop()
		if transportErr := store.TransportErr(); transportErr != nil {
			return fmt.Errorf("tracking scan %d stopped: %w", scanID, transportErr)
		}
		recordOutcome(cfg, log, snap)
		return err
	}
	_ = spinner.Stop()

	recordOutcome(cfg, log, snap)
	ui.PrintSummary(snap)
	ui.PrintFindings(snap.Findings)
	return nil
}

// recordOutcome stores the terminal scan in the local history database.
// History is best effort: failures are logged, never fatal to the watch.
func recordOutcome(cfg *config.Config, log hclog.Logger, snap scan.Scan) {
	if !snap.Status.Terminal() {
		return
	}
	store, err := history.NewStore(config.GetHistoryHome(cfg))
	if err != nil {
		log.Warn("could not open history database", "error", err)
		return
	}
	defer store.Close()

	if err := store.Put(history.NewRecord(snap)); err != nil {
		log.Warn("could not record scan in history", "scan_id", snap.ID, "error", err)
	}
}
