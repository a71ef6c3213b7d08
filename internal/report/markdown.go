package report

import (
	"fmt"
	"strings"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
)

// renderMarkdown renders a Markdown report
func renderMarkdown(report *models.ScanReport) string {
	var sb strings.Builder

	sb.WriteString("# DDAS Duplicate File Report\n\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	if stats := report.Stats; stats != nil {
		sb.WriteString(fmt.Sprintf("| Scan Path | `%s` |\n", stats.ScanPath))
		sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", stats.StartTime.Format(models.DateLayout)))
		sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(stats.Duration)))
		sb.WriteString(fmt.Sprintf("| Unreadable Files | %d |\n", stats.ReadErrors))
		sb.WriteString(fmt.Sprintf("| Unique Files | %d |\n", stats.UniqueFiles))
		sb.WriteString(fmt.Sprintf("| Duplicate Groups | %d |\n", stats.DuplicateGroups))
	}
	sb.WriteString(fmt.Sprintf("| Total Files | %d |\n", report.TotalFiles))
	sb.WriteString(fmt.Sprintf("| **Duplicate Files** | **%d** |\n", report.DuplicateFiles))
	sb.WriteString(fmt.Sprintf("| Space Wasted | %s |\n", FormatBytes(report.SpaceWasted)))
	sb.WriteString("\n")

	if report.DuplicateFiles == 0 {
		sb.WriteString("> ✅ **No duplicates found**\n\n")
	}

	if len(report.Files) == 0 {
		return sb.String()
	}

	sb.WriteString("## Files\n\n")
	sb.WriteString("| Status | Name | Location | Size | Date Added |\n")
	sb.WriteString("|--------|------|----------|------|------------|\n")
	for _, record := range report.Files {
		location := record.Location
		if location == "" {
			location = "/"
		}
		sb.WriteString(fmt.Sprintf("| %s | `%s` | `%s` | %s | %s |\n",
			statusEmoji(record.Status), escapeCell(record.Name), escapeCell(location),
			FormatBytes(record.Size), record.DateAdded))
	}
	sb.WriteString("\n")

	return sb.String()
}

func statusEmoji(status models.Status) string {
	if status == models.StatusDuplicate {
		return "🟠 DUPLICATE"
	}
	return "🟢 UNIQUE"
}

// escapeCell keeps file names from breaking the table
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
