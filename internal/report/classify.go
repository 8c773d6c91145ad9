// SPDX-License-Identifier: MPL-2.0

package report

import (
	"regexp"
	"strings"
)

// Kind classifies a report file by its filename.
type Kind int

const (
	// KindUnknown is a file that matches no known report naming pattern.
	KindUnknown Kind = iota
	// KindWeekly is a 7-day summary report.
	KindWeekly
	// KindDaily is a single-day report (day or night period).
	KindDaily
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindWeekly:
		return "weekly summary"
	case KindDaily:
		return "daily report"
	default:
		return "unknown"
	}
}

var weeklyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b7\s*DAYS?\s+REPORT`),
	regexp.MustCompile(`\b7\s*DAYS?\s+SUMMARY`),
	regexp.MustCompile(`\bSEVEN\s*DAYS?\s+REPORT`),
	regexp.MustCompile(`\bWEEKLY\s+REPORT`),
}

var dailyPattern = regexp.MustCompile(`\bDAY\s*(\d+)\b`)

// IsWeekly reports whether a filename names a 7-day summary report.
// Single-day files must be filtered out before summary analysis because
// their daily tables only cover one period.
func IsWeekly(filename string) bool {
	upper := strings.ToUpper(filename)
	for _, p := range weeklyPatterns {
		if p.MatchString(upper) {
			return true
		}
	}
	return false
}

// Classify determines the report kind from the filename alone.
func Classify(filename string) Kind {
	if IsWeekly(filename) {
		return KindWeekly
	}
	if dailyPattern.MatchString(strings.ToUpper(filename)) {
		return KindDaily
	}
	return KindUnknown
}
