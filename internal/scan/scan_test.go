// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"hatk-cli/internal/report"
)

func writeReports(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReports(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeReports(t, dir,
		"7 Days report (TATA Block-15 Bay-09).pdf",
		"Weekly Report.txt",
		"Day 2 Night report.pdf",
		"Day 1 Day report.pdf",
		"scan.pdf",
		"notes.md",
	)
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Reports(dir)
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}

	if len(result.Weekly) != 2 {
		t.Errorf("Weekly = %d, want 2", len(result.Weekly))
	}
	if len(result.Daily) != 2 {
		t.Errorf("Daily = %d, want 2", len(result.Daily))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Name != "scan.pdf" {
		t.Errorf("Skipped = %+v", result.Skipped)
	}

	// Sorted by name within each group.
	if result.Daily[0].Name != "Day 1 Day report.pdf" {
		t.Errorf("Daily[0] = %q", result.Daily[0].Name)
	}
	if result.Weekly[0].Kind != report.KindWeekly {
		t.Errorf("Weekly[0].Kind = %v", result.Weekly[0].Kind)
	}

	if got := len(result.All()); got != 4 {
		t.Errorf("All() = %d entries, want 4", got)
	}
	if result.Empty() {
		t.Error("Empty() = true")
	}
}

func TestReportsMissingDir(t *testing.T) {
	t.Parallel()

	if _, err := Reports(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Reports() expected error for missing directory")
	}
}

func TestReportsEmptyDir(t *testing.T) {
	t.Parallel()

	result, err := Reports(t.TempDir())
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}
	if !result.Empty() {
		t.Error("Empty() = false for empty directory")
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeReports(t, dir, "7 Days report.pdf", "scan.pdf")

	entry, err := Find(dir, "7 Days report.pdf")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if entry.Kind != report.KindWeekly {
		t.Errorf("Kind = %v", entry.Kind)
	}

	// Skipped files are still addressable by name.
	if _, err := Find(dir, "scan.pdf"); err != nil {
		t.Errorf("Find(scan.pdf) error = %v", err)
	}

	if _, err := Find(dir, "absent.pdf"); err == nil {
		t.Error("Find() expected error for unknown report")
	}
}

func TestFindRejectsTraversal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"../escape.pdf", "a/b.pdf", "..", "."} {
		if _, err := Find(dir, name); err == nil {
			t.Errorf("Find(%q) expected error", name)
		}
	}
}
