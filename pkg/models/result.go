package models

import "time"

// ScanReport contains the complete result of one duplicate scan
type ScanReport struct {
	TotalFiles     int          `json:"total_files" yaml:"total_files"`
	DuplicateFiles int          `json:"duplicate_files" yaml:"duplicate_files"`
	SpaceWasted    int64        `json:"space_wasted" yaml:"space_wasted"`
	Files          []FileRecord `json:"files" yaml:"files"`

	// Run statistics, not part of the wire format
	Stats *ScanStatistics `json:"-" yaml:"-"`
}

// ScanStatistics contains details about a scan run
type ScanStatistics struct {
	ScanPath  string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	UniqueFiles     int // Fingerprints seen exactly once
	DuplicateGroups int // Fingerprints seen more than once
	TotalSize       int64

	// Errors
	ReadErrors int
	ErrorFiles []string
}

// NewScanReport returns an empty report with a non-nil file list
func NewScanReport() *ScanReport {
	return &ScanReport{
		Files: []FileRecord{},
		Stats: &ScanStatistics{},
	}
}

// Duplicates returns the records appended as duplicates, in discovery order
func (r *ScanReport) Duplicates() []FileRecord {
	first := r.TotalFiles - r.DuplicateFiles
	if first < 0 || first > len(r.Files) {
		return nil
	}
	return r.Files[first:]
}
