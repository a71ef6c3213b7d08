package models

import (
	"time"
)

// DateLayout is the layout of FileRecord.DateAdded
const DateLayout = "2006-01-02 15:04:05"

// Status is the duplicate classification of a file
type Status string

const (
	StatusUnique    Status = "UNIQUE"
	StatusDuplicate Status = "DUPLICATE"
)

// FileRecord describes one file that was read and fingerprinted during a scan
type FileRecord struct {
	Name      string `json:"name" yaml:"name"`             // Base file name
	Location  string `json:"location" yaml:"location"`     // Parent directory relative to scan root, "" for the root
	Size      int64  `json:"size" yaml:"size"`             // File size in bytes
	DateAdded string `json:"date_added" yaml:"date_added"` // Change/creation time, DateLayout
	Status    Status `json:"status" yaml:"status"`         // UNIQUE or DUPLICATE
}

// RelativePath returns the record path relative to the scan root, slash separated
func (r *FileRecord) RelativePath() string {
	if r.Location == "" {
		return r.Name
	}
	return r.Location + "/" + r.Name
}

// Sighting is one eligible file produced by the walker.
// Err is set when the file could not be stat'ed or fingerprinted; such a
// sighting is a skip signal and carries no usable fingerprint.
type Sighting struct {
	Path        string    // Absolute path
	Name        string    // File name
	Location    string    // Parent directory relative to scan root
	Size        int64     // File size in bytes
	ChangeTime  time.Time // Change time (inode) or creation time on Windows
	Fingerprint string    // Content fingerprint
	Err         error
}

// Skipped reports whether the sighting must be left out of the report
func (s *Sighting) Skipped() bool {
	return s.Err != nil
}

// Record builds a FileRecord for the sighting with the given status
func (s *Sighting) Record(status Status) FileRecord {
	return FileRecord{
		Name:      s.Name,
		Location:  s.Location,
		Size:      s.Size,
		DateAdded: s.ChangeTime.Local().Format(DateLayout),
		Status:    status,
	}
}
