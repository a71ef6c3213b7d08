package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
	"go.uber.org/zap"
)

// Walker walks the filesystem and fingerprints every eligible file
type Walker struct {
	logger        *zap.Logger
	fingerprinter *Fingerprinter
}

// NewWalker creates a new filesystem walker
func NewWalker(logger *zap.Logger) *Walker {
	return &Walker{
		logger:        logger,
		fingerprinter: NewFingerprinter(),
	}
}

// Walk recursively walks the directory tree under root and calls yield
// once per eligible file. Unreadable files are yielded with Err set so the
// caller decides how to account for them; unreadable directories are
// logged and skipped. Walking stops only if yield returns an error.
func (w *Walker) Walk(root string, yield func(*models.Sighting) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil // Continue walking
		}

		if info.IsDir() || IsHidden(info.Name()) {
			return nil
		}

		sighting := &models.Sighting{
			Path:     path,
			Name:     info.Name(),
			Location: location(root, path),
		}

		info, err = w.resolve(path, info)
		if err != nil {
			sighting.Err = &ReadError{Path: path, Op: "stat", Err: err}
			return yield(sighting)
		}
		if info == nil {
			return nil
		}

		sighting.Size = info.Size()
		sighting.ChangeTime = getChangeTime(info)

		sighting.Fingerprint, err = w.fingerprinter.Fingerprint(path)
		if err != nil {
			sighting.Err = err
		}
		return yield(sighting)
	})
}

// resolve follows symlinks and filters out everything that is not a
// regular file. A nil FileInfo with nil error means skip silently.
func (w *Walker) resolve(path string, info os.FileInfo) (os.FileInfo, error) {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		info = target
	}

	if !info.Mode().IsRegular() {
		w.logger.Debug("Skipping non-regular file",
			zap.String("path", path),
			zap.String("mode", info.Mode().String()))
		return nil, nil
	}
	return info, nil
}

// location returns the parent directory of path relative to root,
// slash separated, with the root itself mapped to ""
func location(root, path string) string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// IsHidden checks if a file is hidden or a system file
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__")
}
