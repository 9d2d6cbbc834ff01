package remote

import (
	"strings"
)

// archiveExtensions the upload endpoint accepts.
var archiveExtensions = []string{".zip", ".tar.gz", ".tgz"}

// HasArchiveExtension reports whether the path names a supported archive.
func HasArchiveExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
