package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/pkg/shared/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithBase(server.URL, hclog.NewNullLogger())
}

func TestGetScan(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scans/7", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            7,
			"status":        "running",
			"source_type":   "github",
			"total_files":   10,
			"files_scanned": 3,
		})
	}))

	got, err := client.GetScan(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, scan.StatusRunning, got.Status)
	assert.Equal(t, 3, got.FilesScanned)
	assert.Equal(t, 10, got.TotalFiles)
}

func TestGetScanSurfacesDetailVerbatim(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Scan not found"})
	}))

	_, err := client.GetScan(context.Background(), 999)

	var transport *errors.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "Scan not found", transport.Detail)
}

func TestGetScanMalformedResponse(t *testing.T) {
	testCases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing id", map[string]interface{}{"status": "running"}},
		{"missing status", map[string]interface{}{"id": 7}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(tc.body)
			}))

			_, err := client.GetScan(context.Background(), 7)

			var malformed *errors.MalformedResponseError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestGetScanTransportFailure(t *testing.T) {
	client := NewClientWithBase("http://127.0.0.1:1", hclog.NewNullLogger())

	_, err := client.GetScan(context.Background(), 7)
	assert.True(t, errors.IsTransport(err))
}

func TestGetFindings(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scans/7/findings", r.URL.Path)
		assert.Equal(t, "critical", r.URL.Query().Get("severity"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "rule_id": "sql-injection", "severity": "critical", "start_line": 10, "end_line": 12},
		})
	}))

	got, err := client.GetFindings(context.Background(), 7, "critical")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sql-injection", got[0].RuleID)
	assert.Equal(t, 10, got[0].StartLine)
}

func TestGetFindingsAllSkipsQueryParam(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("severity"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))

	got, err := client.GetFindings(context.Background(), 7, "all")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetSarifReturnsRawBytes(t *testing.T) {
	payload := `{"version": "2.1.0", "runs": []}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scans/42/sarif", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))

	got, err := client.GetSarif(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []byte(payload), got)
}

func TestScanRepository(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scans/github", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://github.com/juice-shop/juice-shop", body["repo_url"])
		assert.Equal(t, "develop", body["branch"])
		assert.Equal(t, true, body["enable_ai"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 11, "status": "pending"})
	}))

	got, err := client.ScanRepository(context.Background(), "https://github.com/juice-shop/juice-shop", "develop", true)
	require.NoError(t, err)
	assert.Equal(t, 11, got.ID)
	assert.Equal(t, scan.StatusCreated, got.Status)
}

func TestScanRepositoryDefaultsBranch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "main", body["branch"])
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 12, "status": "pending"})
	}))

	_, err := client.ScanRepository(context.Background(), "https://github.com/juice-shop/juice-shop", "", true)
	require.NoError(t, err)
}

func TestUploadArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "source.zip")
	require.NoError(t, os.WriteFile(archive, []byte("PK\x03\x04fake"), 0644))

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scans/upload", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("enable_ai"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "source.zip", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 13, "status": "pending"})
	}))

	got, err := client.UploadArchive(context.Background(), archive, true)
	require.NoError(t, err)
	assert.Equal(t, 13, got.ID)
}

func TestUploadArchiveRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.rar")
	require.NoError(t, os.WriteFile(source, []byte("not supported"), 0644))

	client := NewClientWithBase("http://127.0.0.1:1", hclog.NewNullLogger())
	_, err := client.UploadArchive(context.Background(), source, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported archive")
}

func TestListScans(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scans/", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 3, "status": "completed"},
			{"id": 2, "status": "failed"},
		})
	}))

	got, err := client.ListScans(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].ID)
}

func TestHasArchiveExtension(t *testing.T) {
	assert.True(t, HasArchiveExtension("src.zip"))
	assert.True(t, HasArchiveExtension("src.tar.gz"))
	assert.True(t, HasArchiveExtension("SRC.TGZ"))
	assert.False(t, HasArchiveExtension("src.rar"))
	assert.False(t, HasArchiveExtension("src.tar"))
	assert.False(t, HasArchiveExtension("src"))
}
