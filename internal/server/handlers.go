package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/core"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/filesystem"
)

// Handler serves the DDAS API endpoints
type Handler struct {
	scanner *core.Scanner
	store   *core.FileStore
	logger  *zap.Logger
}

// NewHandler creates the API handler
func NewHandler(scanner *core.Scanner, store *core.FileStore, logger *zap.Logger) *Handler {
	return &Handler{
		scanner: scanner,
		store:   store,
		logger:  logger,
	}
}

type scanRequest struct {
	Directory string `json:"directory"`
}

type deleteRequest struct {
	Path string `json:"path"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "DDAS API is running"})
}

// Scan handles POST /scan
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	// An empty directory scans the configured default
	var req scanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.scanner.Scan(req.Directory)
	if err != nil {
		if errors.Is(err, filesystem.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Directory not found: %s", h.displayRoot(req.Directory)))
			return
		}
		h.logger.Error("Scan failed", zap.String("directory", req.Directory), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Download handles GET /download?path=
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	rel := core.TrimDisplayPrefix(r.URL.Query().Get("path"))

	file, info, err := h.store.Retrieve(rel)
	if err != nil {
		h.writeFileError(w, "Download", rel, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": info.Name()}))
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

// Delete handles POST /delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rel := core.TrimDisplayPrefix(req.Path)
	if err := h.store.Remove(rel); err != nil {
		h.writeFileError(w, "Delete", rel, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "File deleted successfully"})
}

// writeFileError maps file store errors onto status codes
func (h *Handler) writeFileError(w http.ResponseWriter, op, rel string, err error) {
	switch {
	case errors.Is(err, filesystem.ErrInvalidPath):
		writeError(w, http.StatusBadRequest, "No path provided")
	case errors.Is(err, filesystem.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "Access denied: Path outside allowed directory")
	case errors.Is(err, filesystem.ErrNotFound):
		writeError(w, http.StatusNotFound, "File not found")
	case errors.Is(err, filesystem.ErrNotAFile):
		writeError(w, http.StatusBadRequest, "Path is not a file")
	default:
		h.logger.Error(op+" failed", zap.String("path", rel), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody decodes a JSON body; an empty body leaves v untouched
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// displayRoot returns the absolute scan root for messages
func (h *Handler) displayRoot(dir string) string {
	if root, err := h.scanner.ResolveRoot(dir); err == nil {
		return root
	}
	return dir
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
