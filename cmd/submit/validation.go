package submit

import (
	"fmt"

	"github.com/cody-foxy/scanwatch/internal/remote"
)

// validateSubmitArgs checks the mutually exclusive submission sources.
func validateSubmitArgs(options *RunOptionsSubmit) error {
	if options.Archive == "" && options.RepoURL == "" {
		return fmt.Errorf("one of --archive or --repo is required")
	}
	if options.Archive != "" && options.RepoURL != "" {
		return fmt.Errorf("--archive and --repo are mutually exclusive")
	}
	if options.Archive != "" && !remote.HasArchiveExtension(options.Archive) {
		return fmt.Errorf("unsupported archive %q: only .zip, .tar.gz and .tgz are accepted", options.Archive)
	}
	return nil
}
