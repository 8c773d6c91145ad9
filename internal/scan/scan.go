// SPDX-License-Identifier: MPL-2.0

// Package scan finds report files in the configured reports directory and
// classifies them by filename, separating weekly summaries from daily
// reports and unrecognized files.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hatk-cli/internal/report"
)

// reportExts lists the file extensions treated as report captures.
var reportExts = map[string]bool{
	".pdf": true,
	".txt": true,
}

// Entry is one discovered report file.
type Entry struct {
	// Path is the file's full path.
	Path string
	// Name is the base filename.
	Name string
	// Kind is the filename classification.
	Kind report.Kind
}

// Result groups a directory scan's findings.
type Result struct {
	// Weekly holds the 7-day summary reports, sorted by name.
	Weekly []Entry
	// Daily holds the single-day reports, sorted by name.
	Daily []Entry
	// Skipped holds report-shaped files with unrecognized names.
	Skipped []Entry
}

// All returns every classified report (weekly then daily), without the
// skipped files.
func (r Result) All() []Entry {
	out := make([]Entry, 0, len(r.Weekly)+len(r.Daily))
	out = append(out, r.Weekly...)
	return append(out, r.Daily...)
}

// Empty reports whether the scan found no classified reports.
func (r Result) Empty() bool {
	return len(r.Weekly) == 0 && len(r.Daily) == 0
}

// Reports scans dir (non-recursively) for report files. A missing
// directory is an error; an empty one is not.
func Reports(dir string) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read reports directory %s: %w", dir, err)
	}

	var result Result
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !reportExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		e := Entry{
			Path: filepath.Join(dir, name),
			Name: name,
			Kind: report.Classify(name),
		}
		switch e.Kind {
		case report.KindWeekly:
			result.Weekly = append(result.Weekly, e)
		case report.KindDaily:
			result.Daily = append(result.Daily, e)
		default:
			result.Skipped = append(result.Skipped, e)
		}
	}

	for _, group := range [][]Entry{result.Weekly, result.Daily, result.Skipped} {
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
	}

	return result, nil
}

// Find resolves a report by base filename within dir, guarding against
// path traversal in user-supplied names.
func Find(dir, name string) (Entry, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return Entry{}, fmt.Errorf("invalid report name %q", name)
	}

	result, err := Reports(dir)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range append(result.All(), result.Skipped...) {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("report %q not found in %s", name, dir)
}
