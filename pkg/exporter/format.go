package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sevsuctl/pkg/schedule"
)

const (
	FormatICS  = "ics"
	FormatXLSX = "xlsx"
)

// ValidateFormat rejects formats Export cannot write. Empty means ics.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatICS, FormatXLSX, "":
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// Export writes week to w in the given format.
func Export(format string, week schedule.Week, w io.Writer) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if strings.EqualFold(format, FormatXLSX) {
		return GenerateXLSX(week, w)
	}
	return GenerateICS(week, w)
}

// WriteFile exports week to path. Nothing is left on disk if the format is
// unknown or the export fails.
func WriteFile(path, format string, week schedule.Week) (err error) {
	if err := ValidateFormat(format); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to write output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := Export(format, week, file); err != nil {
		return fmt.Errorf("failed to export schedule: %w", err)
	}
	return nil
}

// FileName ensures name carries the extension of format. An empty name
// becomes "schedule-<week>-<year>".
func FileName(name, format string, week schedule.Week) string {
	if format == "" {
		format = FormatICS
	}
	if name == "" {
		name = fmt.Sprintf("schedule-%d-%d", week.Week, week.Year)
	}
	if !strings.EqualFold(filepath.Ext(name), "."+format) {
		name += "." + format
	}
	return name
}
