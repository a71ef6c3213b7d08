package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/config"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/filesystem"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/metrics"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
	"go.uber.org/zap"
)

// Progress phases
const (
	PhaseScanning = "scanning"
	PhaseDone     = "done"
)

// ProgressCallback is called to report scan progress.
// current is the number of files classified so far.
type ProgressCallback func(phase string, current int, message string)

// Scanner finds duplicate files in a directory tree
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	progressCallback ProgressCallback
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		config: cfg,
		logger: logger,
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, message)
	}
}

// Scan walks path and classifies every eligible file as unique or duplicate.
// The only error is a missing root; unreadable files are skipped.
// An empty path scans the configured default directory.
func (s *Scanner) Scan(path string) (*models.ScanReport, error) {
	root, err := s.ResolveRoot(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			metrics.ScansTotal.WithLabelValues("not_found").Inc()
			return nil, fmt.Errorf("directory %s: %w", root, filesystem.ErrNotFound)
		}
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		metrics.ScansTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%s is not a directory: %w", root, filesystem.ErrNotFound)
	}

	// filepath.Walk does not descend a symlinked root
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	s.logger.Info("Starting scan", zap.String("path", root), zap.String("resolved", walkRoot))
	start := time.Now()

	l := newLedger()
	walker := filesystem.NewWalker(s.logger)
	err = walker.Walk(walkRoot, func(sighting *models.Sighting) error {
		if sighting.Skipped() {
			s.logger.Warn("Error processing file",
				zap.String("path", sighting.Path),
				zap.Error(sighting.Err))
			l.skip(sighting.Path)
			return nil
		}

		l.add(sighting)
		s.reportProgress(PhaseScanning, l.total(), sighting.Path)
		return nil
	})
	if err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	report := l.report()
	report.Stats.ScanPath = root
	report.Stats.StartTime = start
	report.Stats.EndTime = time.Now()
	report.Stats.Duration = report.Stats.EndTime.Sub(start)

	s.recordMetrics(report)
	s.reportProgress(PhaseDone, report.TotalFiles, "Scan complete")

	s.logger.Info("Scan completed",
		zap.Duration("duration", report.Stats.Duration),
		zap.Int("total_files", report.TotalFiles),
		zap.Int("duplicate_files", report.DuplicateFiles),
		zap.Int64("space_wasted", report.SpaceWasted),
		zap.Int("read_errors", report.Stats.ReadErrors))

	return report, nil
}

// ResolveRoot returns the absolute directory Scan would walk for path
func (s *Scanner) ResolveRoot(path string) (string, error) {
	if path == "" && s.config != nil {
		path = s.config.ScanPath
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return root, nil
}

func (s *Scanner) recordMetrics(report *models.ScanReport) {
	metrics.ScansTotal.WithLabelValues("success").Inc()
	metrics.FilesScanned.Add(float64(report.TotalFiles))
	metrics.DuplicateFiles.Add(float64(report.DuplicateFiles))
	metrics.SpaceWasted.Add(float64(report.SpaceWasted))
	metrics.ReadErrors.Add(float64(report.Stats.ReadErrors))
	metrics.ScanDuration.Observe(report.Stats.Duration.Seconds())
}
