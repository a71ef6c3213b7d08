package report

import (
	"fmt"
	"strings"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
)

// renderText renders a plain text report
func renderText(report *models.ScanReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("  DDAS DUPLICATE FILE REPORT\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	if stats := report.Stats; stats != nil {
		sb.WriteString(fmt.Sprintf("Scan Path:        %s\n", stats.ScanPath))
		sb.WriteString(fmt.Sprintf("Start Time:       %s\n", stats.StartTime.Format(models.DateLayout)))
		sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(stats.Duration)))
		sb.WriteString(fmt.Sprintf("Unreadable Files: %d\n", stats.ReadErrors))
		sb.WriteString(fmt.Sprintf("Unique Files:     %d\n", stats.UniqueFiles))
		sb.WriteString(fmt.Sprintf("Duplicate Groups: %d\n", stats.DuplicateGroups))
	}
	sb.WriteString(fmt.Sprintf("Total Files:      %d\n", report.TotalFiles))
	sb.WriteString(fmt.Sprintf("Duplicate Files:  %d\n", report.DuplicateFiles))
	sb.WriteString(fmt.Sprintf("Space Wasted:     %s (%d bytes)\n", FormatBytes(report.SpaceWasted), report.SpaceWasted))
	sb.WriteString("\n")

	// Files
	sb.WriteString("FILES\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	if len(report.Files) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, record := range report.Files {
		sb.WriteString(fmt.Sprintf("  %-9s  %12d  %s  %s\n",
			record.Status, record.Size, record.DateAdded, record.RelativePath()))
	}
	sb.WriteString("\n")

	// Copies found after the first one; removing them frees SpaceWasted
	if dups := report.Duplicates(); len(dups) > 0 {
		sb.WriteString("REDUNDANT COPIES\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, record := range dups {
			sb.WriteString(fmt.Sprintf("  %12d  %s\n", record.Size, record.RelativePath()))
		}
		sb.WriteString("\n")
	}

	if report.Stats != nil && len(report.Stats.ErrorFiles) > 0 {
		sb.WriteString("UNREADABLE FILES\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, path := range report.Stats.ErrorFiles {
			sb.WriteString("  " + path + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
