package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/filesystem"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/metrics"
	"go.uber.org/zap"
)

// DisplayRootPrefix is the label the web UI puts in front of files that
// live directly in the root directory
const DisplayRootPrefix = "Root Directory/"

// FileStore retrieves and removes files below a fixed root
type FileStore struct {
	guard  *filesystem.Guard
	logger *zap.Logger
}

// NewFileStore creates a file store rooted at root
func NewFileStore(root string, logger *zap.Logger) (*FileStore, error) {
	guard, err := filesystem.NewGuard(root)
	if err != nil {
		return nil, err
	}
	return &FileStore{
		guard:  guard,
		logger: logger,
	}, nil
}

// Root returns the absolute root of the store
func (fs *FileStore) Root() string {
	return fs.guard.Root()
}

// TrimDisplayPrefix strips the UI root label from rel
func TrimDisplayPrefix(rel string) string {
	return strings.TrimPrefix(rel, DisplayRootPrefix)
}

// Retrieve opens the file at rel. The caller closes the returned file.
func (fs *FileStore) Retrieve(rel string) (*os.File, os.FileInfo, error) {
	path, err := fs.resolve(rel)
	if err != nil {
		metrics.FileOperations.WithLabelValues("retrieve", resultLabel(err)).Inc()
		return nil, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		err = notFound(path, err)
		metrics.FileOperations.WithLabelValues("retrieve", resultLabel(err)).Inc()
		return nil, nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		err = fmt.Errorf("failed to stat %s: %w", path, err)
		metrics.FileOperations.WithLabelValues("retrieve", resultLabel(err)).Inc()
		return nil, nil, err
	}

	metrics.FileOperations.WithLabelValues("retrieve", "success").Inc()
	return file, info, nil
}

// Remove deletes the file at rel
func (fs *FileStore) Remove(rel string) error {
	err := fs.remove(rel)
	metrics.FileOperations.WithLabelValues("remove", resultLabel(err)).Inc()
	return err
}

func (fs *FileStore) remove(rel string) error {
	path, err := fs.resolve(rel)
	if err != nil {
		return err
	}

	// The file may have vanished since it was checked; that is a plain
	// not found, not a failure
	if err := os.Remove(path); err != nil {
		return notFound(path, err)
	}

	fs.logger.Info("File deleted", zap.String("path", path))
	return nil
}

// resolve validates rel and returns the absolute path of an existing
// regular file
func (fs *FileStore) resolve(rel string) (string, error) {
	if rel == "" {
		return "", filesystem.ErrInvalidPath
	}

	path, err := fs.guard.Resolve(rel)
	if err != nil {
		fs.logger.Warn("Rejected path outside root",
			zap.String("root", fs.guard.Root()),
			zap.String("path", rel))
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", notFound(path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, filesystem.ErrNotAFile)
	}
	return path, nil
}

// notFound maps a missing file to ErrNotFound and keeps other errors
func notFound(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file %s: %w", path, filesystem.ErrNotFound)
	}
	return fmt.Errorf("failed to access %s: %w", path, err)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, filesystem.ErrNotFound):
		return "not_found"
	case errors.Is(err, filesystem.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, filesystem.ErrInvalidPath), errors.Is(err, filesystem.ErrNotAFile):
		return "invalid"
	default:
		return "error"
	}
}
