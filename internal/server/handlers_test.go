package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/config"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/core"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
)

type testEnv struct {
	root   string
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		ScanPath: root,
		RootDir:  root,
		Server:   config.ServerConfig{CORSOrigins: []string{"*"}},
	}
	logger := zap.NewNop()

	store, err := core.NewFileStore(cfg.RootDir, logger)
	require.NoError(t, err)

	h := NewHandler(core.NewScanner(cfg, logger), store, logger)
	return &testEnv{
		root:   root,
		router: NewRouter(cfg, logger, h),
	}
}

func (e *testEnv) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(e.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"DDAS API is running"}`, rec.Body.String())
}

func TestScan(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "a.txt", "X")
	env.write(t, "sub/b.txt", "X")
	env.write(t, "sub/c.txt", "Y")

	body, _ := json.Marshal(scanRequest{Directory: env.root})
	rec := env.do(http.MethodPost, "/scan", string(body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report models.ScanReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.TotalFiles)
	assert.Equal(t, 1, report.DuplicateFiles)
	assert.Equal(t, int64(1), report.SpaceWasted)
	require.Len(t, report.Files, 3)
	assert.Equal(t, "a.txt", report.Files[0].Name)
	assert.Equal(t, models.StatusDuplicate, report.Files[0].Status)
	assert.Equal(t, "b.txt", report.Files[2].Name)
	assert.Equal(t, "sub", report.Files[2].Location)
}

func TestScan_DefaultDirectory(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "only.txt", "1")

	// An empty directory field falls back to the configured scan path
	rec := env.do(http.MethodPost, "/scan", `{"directory": ""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var report models.ScanReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TotalFiles)
}

func TestScan_NotFound(t *testing.T) {
	env := newTestEnv(t)
	missing := filepath.Join(env.root, "missing")

	body, _ := json.Marshal(scanRequest{Directory: missing})
	rec := env.do(http.MethodPost, "/scan", string(body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Directory not found: "+missing, decodeError(t, rec))
}

func TestScan_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/scan", `{"directory":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "invalid JSON body")
}

func TestDownload(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "sub/b.txt", "hello world")

	rec := env.do(http.MethodGet, "/download?path=sub/b.txt", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello world", rec.Body.String())
	assert.Equal(t, `attachment; filename=b.txt`, rec.Header().Get("Content-Disposition"))
}

func TestDownload_RootDisplayPrefix(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "a.txt", "root file")

	rec := env.do(http.MethodGet, "/download?path=Root%20Directory/a.txt", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root file", rec.Body.String())
}

func TestDownload_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "dir/x.txt", "x")

	tests := []struct {
		name    string
		query   string
		status  int
		message string
	}{
		{"Missing path", "", http.StatusBadRequest, "No path provided"},
		{"Parent escape", "?path=../../etc/passwd", http.StatusForbidden, "Access denied: Path outside allowed directory"},
		{"Absolute override", "?path=/etc/passwd", http.StatusForbidden, "Access denied: Path outside allowed directory"},
		{"Escape behind display prefix", "?path=Root%20Directory/../../etc/passwd", http.StatusForbidden, "Access denied: Path outside allowed directory"},
		{"Missing file", "?path=nope.txt", http.StatusNotFound, "File not found"},
		{"Directory", "?path=dir", http.StatusBadRequest, "Path is not a file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/download"+tt.query, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec))
		})
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	path := env.write(t, "a.txt", "X")

	rec := env.do(http.MethodPost, "/delete", `{"path": "Root Directory/a.txt"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"File deleted successfully"}`, rec.Body.String())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting again after the file is gone is a plain not found
	rec = env.do(http.MethodPost, "/delete", `{"path": "a.txt"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_Errors(t *testing.T) {
	env := newTestEnv(t)
	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Missing path", `{}`, http.StatusBadRequest},
		{"Empty body", ``, http.StatusBadRequest},
		{"Invalid JSON", `{"path":`, http.StatusBadRequest},
		{"Absolute outside root", `{"path": "` + filepath.ToSlash(outside) + `"}`, http.StatusForbidden},
		{"Parent escape", `{"path": "../keep.txt"}`, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/delete", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	_, err := os.Stat(outside)
	assert.NoError(t, err, "file outside root was touched")
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", "")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/scan", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/scan", `{}`)

	rec := env.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ddas_scans_total")
	assert.Contains(t, rec.Body.String(), "ddas_http_requests_total")
}
