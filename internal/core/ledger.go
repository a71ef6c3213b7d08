package core

import (
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
)

// ledger accumulates one scan. Records live in an append-only arena and
// are referenced by index from both the fingerprint index and the output
// order lists, so flipping a first-seen record is an update by id.
type ledger struct {
	records    []models.FileRecord
	index      map[string]int // fingerprint -> first-seen record id
	firstSeen  []int
	duplicates []int

	spaceWasted int64
	totalSize   int64
	groups      int
	errorFiles  []string
}

func newLedger() *ledger {
	return &ledger{
		index: make(map[string]int),
	}
}

// add classifies one successfully fingerprinted file
func (l *ledger) add(s *models.Sighting) {
	l.totalSize += s.Size

	id, seen := l.index[s.Fingerprint]
	if !seen {
		id = l.append(s.Record(models.StatusUnique))
		l.index[s.Fingerprint] = id
		l.firstSeen = append(l.firstSeen, id)
		return
	}

	if l.records[id].Status == models.StatusUnique {
		l.records[id].Status = models.StatusDuplicate
		l.groups++
	}
	l.duplicates = append(l.duplicates, l.append(s.Record(models.StatusDuplicate)))
	l.spaceWasted += s.Size
}

// skip records a file that could not be read
func (l *ledger) skip(path string) {
	l.errorFiles = append(l.errorFiles, path)
}

func (l *ledger) append(r models.FileRecord) int {
	l.records = append(l.records, r)
	return len(l.records) - 1
}

func (l *ledger) total() int {
	return len(l.firstSeen) + len(l.duplicates)
}

// report assembles first-seen records in insertion order followed by
// duplicates in discovery order
func (l *ledger) report() *models.ScanReport {
	report := models.NewScanReport()
	report.TotalFiles = l.total()
	report.DuplicateFiles = len(l.duplicates)
	report.SpaceWasted = l.spaceWasted

	report.Files = make([]models.FileRecord, 0, len(l.records))
	for _, id := range l.firstSeen {
		report.Files = append(report.Files, l.records[id])
	}
	for _, id := range l.duplicates {
		report.Files = append(report.Files, l.records[id])
	}

	report.Stats.UniqueFiles = len(l.firstSeen) - l.groups
	report.Stats.DuplicateGroups = l.groups
	report.Stats.TotalSize = l.totalSize
	report.Stats.ReadErrors = len(l.errorFiles)
	report.Stats.ErrorFiles = l.errorFiles
	return report
}
