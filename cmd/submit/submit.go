package submit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cody-foxy/scanwatch/cmd/watch"
	"github.com/cody-foxy/scanwatch/internal/remote"
	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/pkg/shared/config"
	"github.com/cody-foxy/scanwatch/pkg/shared/logger"
)

// RunOptionsSubmit holds the arguments for the submit command.
type RunOptionsSubmit struct {
	Archive string
	RepoURL string
	Branch  string
	NoAI    bool
	Watch   bool
}

var (
	AppConfig          *config.Config
	submitOptions      RunOptionsSubmit
	exampleSubmitUsage = `  # Submitting a source archive for analysis
  scanwatch submit --archive /path/to/source.zip

  # Submitting a GitHub repository reference on a specific branch
  scanwatch submit --repo https://github.com/juice-shop/juice-shop --branch develop

  # Submitting and tracking the scan until it finishes
  scanwatch submit --archive /path/to/source.tar.gz --watch

  # Submitting without AI explanation generation
  scanwatch submit --repo https://github.com/juice-shop/juice-shop --no-ai`
)

// SubmitCmd represents the submit command.
var SubmitCmd = &cobra.Command{
	Use:                   "submit {--archive/-a PATH | --repo/-r URL [--branch/-b NAME]} [--no-ai] [--watch/-w]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSubmitUsage,
	Short:                 "Submit source code for analysis by archive upload or repository reference",
	RunE:                  runSubmitCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func init() {
	SubmitCmd.Flags().StringVarP(&submitOptions.Archive, "archive", "a", "", "path to a source archive (.zip, .tar.gz, .tgz)")
	SubmitCmd.Flags().StringVarP(&submitOptions.RepoURL, "repo", "r", "", "repository URL to scan")
	SubmitCmd.Flags().StringVarP(&submitOptions.Branch, "branch", "b", "main", "branch to scan for repository submissions")
	SubmitCmd.Flags().BoolVar(&submitOptions.NoAI, "no-ai", false, "disable AI explanation generation")
	SubmitCmd.Flags().BoolVarP(&submitOptions.Watch, "watch", "w", false, "track the scan until it reaches a terminal state")
}

// runSubmitCommand executes the submit command.
func runSubmitCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-submit")

	if err := validateSubmitArgs(&submitOptions); err != nil {
		log.Error("invalid submit arguments", "error", err)
		return err
	}

	client := remote.NewClient(AppConfig, log)
	ctx := cmd.Context()
	enableAI := !submitOptions.NoAI

	var created *scan.Scan
	var err error
	if submitOptions.Archive != "" {
		created, err = client.UploadArchive(ctx, submitOptions.Archive, enableAI)
	} else {
		created, err = client.ScanRepository(ctx, submitOptions.RepoURL, submitOptions.Branch, enableAI)
	}
	if err != nil {
		log.Error("submission failed", "error", err)
		return err
	}

	log.Info("scan submitted", "scan_id", created.ID, "status", created.Status)
	fmt.Printf("Scan %d submitted (status %s)\n", created.ID, created.Status)

	if submitOptions.Watch {
		return watch.Track(ctx, AppConfig, log, client, created.ID)
	}

	fmt.Printf("Run 'scanwatch watch %d' to track it.\n", created.ID)
	return nil
}
