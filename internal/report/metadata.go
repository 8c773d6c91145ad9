// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NotFound is the placeholder for metadata fields absent from a report.
// Missing metadata is never fatal; the analyzers degrade to defaults.
const NotFound = "Not found"

// Metadata holds the identification block from a report's first page plus
// the site tokens recovered from the filename and page text combined.
type Metadata struct {
	// Component is the parenthesized portion of the filename, e.g.
	// "TATA Block-15 Bay-09".
	Component string
	// Block is the numeric block identifier.
	Block string
	// Feeder is the numeric feeder or bay identifier.
	Feeder string
	// Company is the recognized operator token.
	Company string

	// StartTime and EndTime are the report window bounds as printed,
	// e.g. "14-05-2025 06:00:00 AM".
	StartTime string
	EndTime   string
	// GMT is the report's UTC offset, e.g. "+05:30".
	GMT string
	// Version is the report generator version.
	Version string
	// FeederName is the free-text feeder description.
	FeederName string
	// NetworkNominal is the nominal network voltage description.
	NetworkNominal string
}

var (
	componentRe = regexp.MustCompile(`\((.*?)\)`)

	timeBlockRe = regexp.MustCompile(
		`Start time:\s*(\d{2}-\d{2}-\d{4}\s*\d{2}:\d{2}:\d{2}\s*[AP]M)\s*` +
			`End time:\s*(\d{2}-\d{2}-\d{4}\s*\d{2}:\d{2}:\d{2}\s*[AP]M)\s*` +
			`GMT:\s*([+-]\d{2}:\d{2})\s*` +
			`Report Version:\s*([\d.]+)`)

	feederNameRe     = regexp.MustCompile(`Feeder Name:\s*(.+?)(?:\n|Network)`)
	networkNominalRe = regexp.MustCompile(`Network Nominal:\s*(.+?)(?:\n|Device)`)

	blockTokenRe   = regexp.MustCompile(`\bBLOCK[-\s]*(\d{1,3})\b`)
	feederTokenRe  = regexp.MustCompile(`\b(FEEDER|BAY)[-\s]*(\d{1,3})\b`)
	companyTokenRe = regexp.MustCompile(`\b(TATA|ADANI|NTPC|RELIANCE|POWERGRID|TORRENT)\b`)
)

// ExtractMetadata scans the document's first page and filename for the
// identification block. Absent fields are set to NotFound.
func ExtractMetadata(doc *Document) Metadata {
	meta := Metadata{
		Component:      NotFound,
		Block:          NotFound,
		Feeder:         NotFound,
		Company:        NotFound,
		StartTime:      NotFound,
		EndTime:        NotFound,
		GMT:            NotFound,
		Version:        NotFound,
		FeederName:     NotFound,
		NetworkNominal: NotFound,
	}

	name := doc.Name()
	if m := componentRe.FindStringSubmatch(name); m != nil {
		meta.Component = m[1]
	}

	text := doc.Page(0)

	if m := timeBlockRe.FindStringSubmatch(text); m != nil {
		meta.StartTime = m[1]
		meta.EndTime = m[2]
		meta.GMT = m[3]
		meta.Version = m[4]
	}
	if m := feederNameRe.FindStringSubmatch(text); m != nil {
		meta.FeederName = strings.TrimSpace(m[1])
	}
	if m := networkNominalRe.FindStringSubmatch(text); m != nil {
		meta.NetworkNominal = strings.TrimSpace(m[1])
	}

	// Site tokens may live in either the filename or the page header.
	combined := strings.ToUpper(name + " " + text)
	if m := blockTokenRe.FindStringSubmatch(combined); m != nil {
		meta.Block = m[1]
	}
	if m := feederTokenRe.FindStringSubmatch(combined); m != nil {
		meta.Feeder = m[2]
	}
	if m := companyTokenRe.FindStringSubmatch(combined); m != nil {
		meta.Company = m[1]
	}

	return meta
}

// Window returns the report's start and end instants. ok is false when
// either bound is missing or unparseable.
func (m Metadata) Window() (start, end time.Time, ok bool) {
	start, err := ParseReportTime(m.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = ParseReportTime(m.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// ParseReportTime parses a report timestamp such as "14-05-2025 06:00:00 AM".
// The hour field is already 24-hour in these reports; the AM/PM marker is
// decorative and ignored.
func ParseReportTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, " AM")
	s = strings.TrimSuffix(s, " PM")

	t, err := time.Parse("02-01-2006 15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid report timestamp %q: %w", s, err)
	}
	return t, nil
}
