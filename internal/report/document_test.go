// SPDX-License-Identifier: MPL-2.0

package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "7 Days report (TATA Block-15 Bay-09).txt")
	content := "page one\fpage two\fpage three"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(doc.Pages))
	}
	if doc.Page(1) != "page two" {
		t.Errorf("Page(1) = %q", doc.Page(1))
	}
	if doc.Name() != "7 Days report (TATA Block-15 Bay-09).txt" {
		t.Errorf("Name() = %q", doc.Name())
	}
}

func TestLoadTextSinglePage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "capture.txt")
	if err := os.WriteFile(path, []byte("only page"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Pages) != 1 || doc.Pages[0] != "only page" {
		t.Errorf("Pages = %v", doc.Pages)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Load() expected error for missing file")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Error("Load() expected error for missing PDF")
	}
}

func TestPageOutOfRange(t *testing.T) {
	t.Parallel()

	doc := &Document{Pages: []string{"a"}}
	if doc.Page(-1) != "" || doc.Page(1) != "" {
		t.Error("out-of-range Page() should return empty string")
	}
}
