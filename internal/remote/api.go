package remote

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/pkg/shared/errors"
	"github.com/cody-foxy/scanwatch/pkg/shared/files"
)

// GetScan fetches the current scan record. Findings are omitted by the
// service while the scan is non-terminal.
func (c *Client) GetScan(ctx context.Context, id int) (*scan.Scan, error) {
	var result scan.Scan
	resp, err := c.request(ctx).
		SetResult(&result).
		SetError(&errorEnvelope{}).
		Get(c.url("/scans/%d", id))
	if err := c.checkResponse("get scan", resp, err); err != nil {
		return nil, err
	}

	if result.ID == 0 {
		return nil, errors.NewMalformedResponseError("get scan", "missing scan id")
	}
	if result.Status == "" {
		return nil, errors.NewMalformedResponseError("get scan", "missing scan status")
	}
	return &result, nil
}

// GetFindings fetches the findings batch for a scan, optionally projected to
// one severity by the service. The endpoint is only meaningful once the scan
// is terminal.
func (c *Client) GetFindings(ctx context.Context, id int, severity string) ([]scan.Finding, error) {
	var result []scan.Finding
	req := c.request(ctx).
		SetResult(&result).
		SetError(&errorEnvelope{})
	if severity != "" && severity != "all" {
		req.SetQueryParam("severity", severity)
	}

	resp, err := req.Get(c.url("/scans/%d/findings", id))
	if err := c.checkResponse("get findings", resp, err); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSarif fetches the canonical SARIF report bytes for a completed scan.
func (c *Client) GetSarif(ctx context.Context, id int) ([]byte, error) {
	resp, err := c.request(ctx).
		SetError(&errorEnvelope{}).
		Get(c.url("/scans/%d/sarif", id))
	if err := c.checkResponse("get sarif report", resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// UploadArchive submits a source archive for analysis and returns the new
// scan record. Only zip and gzipped tarballs are accepted by the service, so
// the path is validated locally before any bytes are sent.
func (c *Client) UploadArchive(ctx context.Context, archivePath string, enableAI bool) (*scan.Scan, error) {
	if err := files.ValidatePath(archivePath); err != nil {
		return nil, fmt.Errorf("invalid archive path: %w", err)
	}
	if !HasArchiveExtension(archivePath) {
		return nil, fmt.Errorf("unsupported archive %q: only .zip, .tar.gz and .tgz are accepted", archivePath)
	}

	var result scan.Scan
	resp, err := c.request(ctx).
		SetFile("file", archivePath).
		SetQueryParam("enable_ai", fmt.Sprintf("%t", enableAI)).
		SetResult(&result).
		SetError(&errorEnvelope{}).
		Post(c.url("/scans/upload"))
	if err := c.checkResponse("upload archive", resp, err); err != nil {
		return nil, err
	}

	if result.ID == 0 {
		return nil, errors.NewMalformedResponseError("upload archive", "missing scan id")
	}
	return &result, nil
}

// ScanRepository submits a repository reference for analysis. The reference
// is opaque to the client; cloning happens on the service side.
func (c *Client) ScanRepository(ctx context.Context, repoURL, branch string, enableAI bool) (*scan.Scan, error) {
	if branch == "" {
		branch = "main"
	}

	var result scan.Scan
	resp, err := c.request(ctx).
		SetBody(map[string]interface{}{
			"repo_url":  repoURL,
			"branch":    branch,
			"enable_ai": enableAI,
		}).
		SetResult(&result).
		SetError(&errorEnvelope{}).
		Post(c.url("/scans/github"))
	if err := c.checkResponse("scan repository", resp, err); err != nil {
		return nil, err
	}

	if result.ID == 0 {
		return nil, errors.NewMalformedResponseError("scan repository", "missing scan id")
	}
	return &result, nil
}

// ListScans fetches past scans, newest first.
func (c *Client) ListScans(ctx context.Context, limit, offset int) ([]scan.Scan, error) {
	if limit <= 0 {
		limit = 20
	}

	var result []scan.Scan
	resp, err := c.request(ctx).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetQueryParam("offset", fmt.Sprintf("%d", offset)).
		SetResult(&result).
		SetError(&errorEnvelope{}).
		Get(c.url("/scans/"))
	if err := c.checkResponse("list scans", resp, err); err != nil {
		return nil, err
	}
	return result, nil
}

// checkResponse folds transport failures and non-success statuses into a
// TransportError, carrying the service's own detail text when present.
func (c *Client) checkResponse(operation string, resp *resty.Response, err error) error {
	if err != nil {
		return errors.NewTransportError(operation, "", err)
	}
	if resp.IsSuccess() {
		return nil
	}

	detail := fmt.Sprintf("unexpected status %s", resp.Status())
	if envelope, ok := resp.Error().(*errorEnvelope); ok && envelope.Detail != "" {
		detail = envelope.Detail
	}
	c.logger.Error("remote call failed", "operation", operation, "status", resp.StatusCode(), "detail", detail)
	return errors.NewTransportError(operation, detail, nil)
}
