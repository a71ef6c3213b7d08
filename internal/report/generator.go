package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/config"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorWhite  = "\033[37m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// FormatBytes formats a byte count with binary units
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Generator generates scan reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator writing console output to stdout
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	if !config.IsReportFormat(cfg.ReportFormat) {
		return nil, fmt.Errorf("unknown report format: %s", cfg.ReportFormat)
	}
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// SetOutput redirects console output
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// Generate writes the report in the configured format and returns the
// absolute path of the written file, or "" for console output
func (g *Generator) Generate(report *models.ScanReport) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	// If no format specified, print to console
	if format == "" {
		g.printConsole(report)
		return "", nil
	}

	// Generate default filename if not specified
	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("DDAS-REPORT-%s.%s", timestamp, extension(format))
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	data, err := g.Render(format, report)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	// Get absolute path
	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// Render encodes the report in format
func (g *Generator) Render(format string, report *models.ScanReport) ([]byte, error) {
	switch format {
	case "json":
		return renderJSON(report)
	case "yaml", "yml":
		return renderYAML(report)
	case "txt", "text":
		return []byte(renderText(report)), nil
	case "md", "markdown":
		return []byte(renderMarkdown(report)), nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

func extension(format string) string {
	switch format {
	case "text":
		return "txt"
	case "markdown":
		return "md"
	case "yml":
		return "yaml"
	default:
		return format
	}
}

// printConsole prints the report to the console with colors
func (g *Generator) printConsole(report *models.ScanReport) {
	w := g.out
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s%sSCAN COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Fprintln(w)

	if report.Stats != nil {
		fmt.Fprintf(w, "  %sPath:%s        %s\n", colorGray, colorReset, report.Stats.ScanPath)
		fmt.Fprintf(w, "  %sDuration:%s    %s\n", colorGray, colorReset, FormatDuration(report.Stats.Duration))
	}
	fmt.Fprintf(w, "  %sFiles:%s       %d\n", colorGray, colorReset, report.TotalFiles)
	fmt.Fprintf(w, "  %sDuplicates:%s  %d\n", colorGray, colorReset, report.DuplicateFiles)
	fmt.Fprintf(w, "  %sWasted:%s      %s\n", colorGray, colorReset, FormatBytes(report.SpaceWasted))
	if report.Stats != nil {
		fmt.Fprintf(w, "  %sGroups:%s      %d\n", colorGray, colorReset, report.Stats.DuplicateGroups)
		fmt.Fprintf(w, "  %sUnique:%s      %d\n", colorGray, colorReset, report.Stats.UniqueFiles)
	}
	if report.Stats != nil && report.Stats.ReadErrors > 0 {
		fmt.Fprintf(w, "  %sUnreadable:%s  %d\n", colorGray, colorReset, report.Stats.ReadErrors)
	}
	fmt.Fprintln(w)

	if report.DuplicateFiles == 0 {
		fmt.Fprintf(w, "  %s%s✓ No duplicates found%s\n", colorBold, colorGreen, colorReset)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  %s%s⚠ DUPLICATES FOUND: %d%s\n", colorBold, colorRed, report.DuplicateFiles, colorReset)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, strings.Repeat("─", 63), colorReset)

	n := 0
	for _, record := range report.Files {
		if record.Status != models.StatusDuplicate {
			continue
		}
		n++
		fmt.Fprintf(w, "\n  %s%s[%d]%s %s%s%s\n", colorBold, colorWhite, n, colorReset, colorOrange, record.RelativePath(), colorReset)
		fmt.Fprintf(w, "      %sSize:%s   %s\n", colorGray, colorReset, FormatBytes(record.Size))
		fmt.Fprintf(w, "      %sAdded:%s  %s%s%s\n", colorGray, colorReset, colorDim, record.DateAdded, colorReset)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, strings.Repeat("─", 63), colorReset)
	fmt.Fprintln(w)
}
