package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sevsuctl/pkg/schedule"
)

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	if err := Export("ICS", sampleWeek(), &buf); err != nil {
		t.Fatalf("Export ics failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "BEGIN:VCALENDAR") {
		t.Errorf("expected a calendar, got %q", buf.String())
	}

	buf.Reset()
	if err := Export(FormatXLSX, sampleWeek(), &buf); err != nil {
		t.Fatalf("Export xlsx failed: %v", err)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Errorf("expected a zip archive")
	}

	if err := Export("pdf", sampleWeek(), &buf); err == nil {
		t.Errorf("expected an error for an unknown format")
	}
}

func TestFileName(t *testing.T) {
	week := schedule.Week{Week: 10, Year: 2026}

	tests := []struct {
		name, format, want string
	}{
		{"", "", "schedule-10-2026.ics"},
		{"", FormatXLSX, "schedule-10-2026.xlsx"},
		{"my", FormatICS, "my.ics"},
		{"my.ICS", FormatICS, "my.ICS"},
		{"my.ics", FormatXLSX, "my.ics.xlsx"},
	}

	for _, tt := range tests {
		if got := FileName(tt.name, tt.format, week); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.name, tt.format, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "week.ics")
	if err := WriteFile(path, FormatICS, sampleWeek()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected the file to exist: %v", err)
	}
	if !strings.Contains(string(data), "SUMMARY:Линейная алгебра") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestWriteFile_UnknownFormatLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.pdf")

	if err := WriteFile(path, "pdf", sampleWeek()); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file to be created, stat returned %v", err)
	}
}

func TestWriteFile_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "week.ics")

	if err := WriteFile(path, FormatICS, sampleWeek()); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}
