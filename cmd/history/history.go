package history

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cody-foxy/scanwatch/internal/history"
	"github.com/cody-foxy/scanwatch/internal/ui"
	"github.com/cody-foxy/scanwatch/pkg/shared/config"
	"github.com/cody-foxy/scanwatch/pkg/shared/logger"
)

var (
	AppConfig           *config.Config
	exampleHistoryUsage = `  # Listing locally recorded scans
  scanwatch history

  # Forgetting one scan
  scanwatch history forget 42`
)

// HistoryCmd lists scans recorded by previous watch sessions.
var HistoryCmd = &cobra.Command{
	Use:                   "history",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleHistoryUsage,
	Short:                 "Show scans tracked on this machine",
	RunE:                  runHistoryCommand,
}

var forgetCmd = &cobra.Command{
	Use:                   "forget SCAN_ID",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Remove one scan from the local history",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runForgetCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	HistoryCmd.AddCommand(forgetCmd)
}

// runHistoryCommand executes the history command.
func runHistoryCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-history")

	store, err := history.NewStore(config.GetHistoryHome(AppConfig))
	if err != nil {
		log.Error("could not open history database", "error", err)
		return err
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		log.Error("could not list history", "error", err)
		return err
	}

	ui.PrintHistory(records)
	return nil
}

// runForgetCommand executes the history forget subcommand.
func runForgetCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-history")

	scanID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid scan id %q: %w", args[0], err)
	}

	store, err := history.NewStore(config.GetHistoryHome(AppConfig))
	if err != nil {
		log.Error("could not open history database", "error", err)
		return err
	}
	defer store.Close()

	if err := store.Delete(scanID); err != nil {
		return err
	}

	pterm.Success.Printf("Scan %d removed from history\n", scanID)
	return nil
}
