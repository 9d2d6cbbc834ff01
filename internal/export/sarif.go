package export

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/pkg/shared/errors"
	"github.com/cody-foxy/scanwatch/pkg/shared/files"
)

// ReportFetcher is the slice of the remote client the exporter needs. The
// report is always fetched from the service rather than re-derived from
// local findings, so the exported file is byte-identical to the canonical
// one.
type ReportFetcher interface {
	GetSarif(ctx context.Context, id int) ([]byte, error)
}

// Exporter serializes the findings of a completed scan into a downloadable
// SARIF artifact.
type Exporter struct {
	api    ReportFetcher
	logger hclog.Logger
}

// NewExporter creates an Exporter backed by the given report fetcher.
func NewExporter(api ReportFetcher, logger hclog.Logger) *Exporter {
	return &Exporter{api: api, logger: logger.Named("export")}
}

// ArtifactName returns the deterministic download name for a scan's report.
func ArtifactName(scanID int) string {
	return fmt.Sprintf("cody-foxy-scan-%d.sarif", scanID)
}

// Sarif produces the report bytes and artifact name for the scan in snap.
// The snapshot must be in the completed state; anything else fails with
// NotReadyError before any network call is made. A failing or garbled remote
// fetch fails with ExportUnavailableError and leaves prior state intact.
func (e *Exporter) Sarif(ctx context.Context, snap scan.Scan) ([]byte, string, error) {
	if snap.Status != scan.StatusCompleted {
		return nil, "", errors.NewNotReadyError(snap.ID, string(snap.Status))
	}

	data, err := e.api.GetSarif(ctx, snap.ID)
	if err != nil {
		return nil, "", errors.NewExportUnavailableError(snap.ID, err)
	}

	// the payload is opaque to us, but it must at least parse as SARIF
	var report sarif.Report
	if err := json.Unmarshal(data, &report); err != nil {
		e.logger.Error("remote report is not valid SARIF", "scan_id", snap.ID, "error", err)
		return nil, "", errors.NewExportUnavailableError(snap.ID,
			errors.NewMalformedResponseError("get sarif report", err.Error()))
	}
	if report.Version == "" || len(report.Runs) == 0 {
		return nil, "", errors.NewExportUnavailableError(snap.ID,
			errors.NewMalformedResponseError("get sarif report", "report has no runs"))
	}

	return data, ArtifactName(snap.ID), nil
}

// Save writes the report for snap under dir and returns the full path.
func (e *Exporter) Save(ctx context.Context, snap scan.Scan, dir string) (string, error) {
	data, name, err := e.Sarif(ctx, snap)
	if err != nil {
		return "", err
	}

	path, err := files.DetermineFileFullPath(dir, name)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := files.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("error writing report artifact: %w", err)
	}

	e.logger.Info("report saved", "scan_id", snap.ID, "path", path)
	return path, nil
}
