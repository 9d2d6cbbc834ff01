package export

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cody-foxy/scanwatch/internal/export"
	"github.com/cody-foxy/scanwatch/internal/remote"
	"github.com/cody-foxy/scanwatch/pkg/shared/config"
	"github.com/cody-foxy/scanwatch/pkg/shared/errors"
	"github.com/cody-foxy/scanwatch/pkg/shared/logger"
)

// RunOptionsExport holds the arguments for the export command.
type RunOptionsExport struct {
	Output string
}

var (
	AppConfig          *config.Config
	exportOptions      RunOptionsExport
	exampleExportUsage = `  # Exporting the SARIF report of scan 42 to the reports folder
  scanwatch export 42

  # Exporting to an explicit directory
  scanwatch export 42 --output /tmp/reports`
)

// ExportCmd downloads the canonical SARIF report of a completed scan.
var ExportCmd = &cobra.Command{
	Use:                   "export SCAN_ID [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExportUsage,
	Short:                 "Export the SARIF report of a completed scan",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runExportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOptions.Output, "output", "o", "", "directory or file to write the report to")
}

// runExportCommand executes the export command.
func runExportCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-export")

	scanID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid scan id %q: %w", args[0], err)
	}

	client := remote.NewClient(AppConfig, log)
	snap, err := client.GetScan(cmd.Context(), scanID)
	if err != nil {
		log.Error("status fetch failed", "scan_id", scanID, "error", err)
		return err
	}

	outDir := exportOptions.Output
	if outDir == "" {
		outDir = config.GetReportsHome(AppConfig)
	}

	exporter := export.NewExporter(client, log)
	path, err := exporter.Save(cmd.Context(), *snap, outDir)
	if err != nil {
		if errors.IsNotReady(err) {
			pterm.Warning.Printf("Scan %d has not completed yet (status %s); nothing exported.\n", scanID, snap.Status)
			return err
		}
		log.Error("export failed", "scan_id", scanID, "error", err)
		return err
	}

	pterm.Success.Printf("Report written to %s\n", path)
	return nil
}
