// SPDX-License-Identifier: MPL-2.0

package report

import (
	"regexp"
	"strconv"
	"strings"
)

// TableKind identifies one of the four harmonic measurement tables in a
// report.
type TableKind int

const (
	// VoltageFullRange is the harmonic voltage table over the full
	// report window.
	VoltageFullRange TableKind = iota
	// CurrentFullRange is the harmonic current table over the full
	// report window.
	CurrentFullRange
	// VoltageDaily is the per-day harmonic voltage table.
	VoltageDaily
	// CurrentDaily is the per-day harmonic current table.
	CurrentDaily
)

// TableKinds lists all harmonic table kinds in report order.
var TableKinds = []TableKind{
	VoltageFullRange,
	CurrentFullRange,
	VoltageDaily,
	CurrentDaily,
}

// Title returns the table's heading as printed in reports.
func (k TableKind) Title() string {
	switch k {
	case VoltageFullRange:
		return "Harmonic Voltage Full Time Range"
	case CurrentFullRange:
		return "Harmonic Current Full Time Range"
	case VoltageDaily:
		return "Harmonic Voltage Daily"
	case CurrentDaily:
		return "Harmonic Current Daily"
	default:
		return "Unknown"
	}
}

// IsCurrent reports whether the table measures current rather than voltage.
func (k TableKind) IsCurrent() bool {
	return k == CurrentFullRange || k == CurrentDaily
}

// IsDaily reports whether the table covers per-day rather than full-window
// measurements.
func (k TableKind) IsDaily() bool {
	return k == VoltageDaily || k == CurrentDaily
}

// PhaseNames returns the three phase labels for this table's measurements.
func (k TableKind) PhaseNames() [3]string {
	if k.IsCurrent() {
		return [3]string{"I1", "I2", "I3"}
	}
	return [3]string{"V1N", "V2N", "V3N"}
}

const (
	// MinHarmonic and MaxHarmonic bound the harmonic orders a report
	// carries. The fundamental (order 1) is excluded, and anything above
	// 50 is noise from dates and years leaking into the scan.
	MinHarmonic = 2
	MaxHarmonic = 50
)

// HarmonicRow is one harmonic order's measurements against its regulatory
// limit at a given time-percentile.
type HarmonicRow struct {
	// Harmonic is the harmonic order, MinHarmonic..MaxHarmonic.
	Harmonic int
	// TimeLimit is the time-percentile the limit applies at, 95 or 99.
	TimeLimit float64
	// RegMax is the regulatory maximum in percent.
	RegMax float64
	// Measured holds the three per-phase measured values in percent.
	Measured [3]float64
	// Results holds the printed per-phase verdicts, e.g. "Fail(8.1%)".
	Results [3]string
}

// Failed reports whether phase i (0-based) violates the limit, either by
// an explicit Fail verdict or by the measured value exceeding RegMax.
func (r HarmonicRow) Failed(i int) bool {
	if i < 0 || i > 2 {
		return false
	}
	if strings.Contains(strings.ToLower(r.Results[i]), "fail") {
		return true
	}
	return r.Measured[i] > r.RegMax
}

// TableSet holds the rows extracted for each table kind.
type TableSet map[TableKind][]HarmonicRow

// HasData reports whether any table produced rows.
func (t TableSet) HasData() bool {
	for _, rows := range t {
		if len(rows) > 0 {
			return true
		}
	}
	return false
}

// sectionBoundaries maps each table heading to the headings that terminate
// its section. The scan stays on a table across page breaks until one of
// these appears.
var sectionBoundaries = map[TableKind][]string{
	VoltageFullRange: {
		"SUMMARY", "TOTAL HARMONIC VOLTAGE FULL TIME RANGE",
		"TOTAL HARMONIC DISTORTION FULL TIME RANGE", "HARMONIC CURRENT FULL TIME RANGE",
	},
	CurrentFullRange: {
		"TOTAL HARMONIC DISTORTION DAILY", "TDD FULL TIME RANGE",
		"HARMONIC VOLTAGE DAILY", "TRANSIENT",
	},
	VoltageDaily: {
		"TOTAL HARMONIC DISTORTION FULL TIME RANGE",
		"TOTAL HARMONIC VOLTAGE FULL TIME RANGE", "HARMONIC CURRENT DAILY",
		"TOTAL HARMONIC DISTORTION DAILY",
	},
	CurrentDaily: {
		"TDD FULL TIME RANGE", "TDD DAILY", "TRANSIENT", "FLICKER SEVERITY",
	},
}

// Row patterns, tried in order. The first expects explicit Pass/Fail
// verdicts, the second only the parenthesized worst values, the third
// bare measurements. The bare form requires the %time column to be one of
// the report's 95/99 values so that stray number runs on carried-over
// pages don't read as rows.
var harmonicRowPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*,?\s*(\d+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*` +
		`(Pass|Fail)\s*\(([\d.%]+)\)\s*,?\s*(Pass|Fail)\s*\(([\d.%]+)\)\s*,?\s*(Pass|Fail)\s*\(([\d.%]+)\)`),
	regexp.MustCompile(`(?i)(\d+)\s*,?\s*(\d+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*` +
		`\(([\d.%]+)\)\s*,?\s*\(([\d.%]+)\)\s*,?\s*\(([\d.%]+)\)`),
	regexp.MustCompile(`(?i)(\d+)\s*[,\s]\s*(95|99)\b\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)\s*,?\s*([\d.]+)`),
}

var collapseSpaceRe = regexp.MustCompile(`\s+`)
var verdictSpacingRe = regexp.MustCompile(`(?i)(Pass|Fail)\s*\(\s*([\d.%]+)\s*\)`)

// ExtractTables scans a report for all four harmonic tables. The first
// page is metadata only and is skipped. A table's rows may span pages: the
// scan keeps extracting for the active table until one of its section
// boundaries appears.
func ExtractTables(doc *Document) TableSet {
	tables := make(TableSet, len(TableKinds))
	for _, kind := range TableKinds {
		tables[kind] = nil
	}

	active := TableKind(-1)
	haveActive := false

	for pageNum, page := range doc.Pages {
		if pageNum == 0 {
			continue
		}
		upper := strings.ToUpper(page)

		headingFound := false
		for _, kind := range TableKinds {
			title := strings.ToUpper(kind.Title())
			start := strings.Index(upper, title)
			if start < 0 {
				continue
			}
			headingFound = true

			// Clip the section at the nearest boundary heading after
			// the title.
			end := len(page)
			for _, boundary := range sectionBoundaries[kind] {
				if idx := indexFrom(upper, boundary, start+len(title)); idx >= 0 && idx < end {
					end = idx
				}
			}

			active = kind
			haveActive = true
			appendRows(tables, kind, page[start:end])
		}
		if headingFound {
			continue
		}

		if !haveActive {
			continue
		}

		if !boundaryHit(upper, active) {
			appendRows(tables, active, page)
			continue
		}

		// The daily current table interleaves "HARMONIC 5:" sub-headings
		// that must not terminate the section.
		if active == CurrentDaily && strings.Contains(upper, "HARMONIC 5:") {
			appendRows(tables, active, page)
			continue
		}
		haveActive = false
	}

	return tables
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.Index(s[from:], substr)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func boundaryHit(upper string, kind TableKind) bool {
	for _, boundary := range sectionBoundaries[kind] {
		if kind == CurrentDaily && strings.Contains(strings.ToUpper(boundary), "HARMONIC 5") {
			continue
		}
		if strings.Contains(upper, boundary) {
			return true
		}
	}
	return false
}

// appendRows parses section text into rows and merges them, keeping the
// first row seen for each (harmonic, time-limit) pair.
func appendRows(tables TableSet, kind TableKind, text string) {
	seen := make(map[[2]int]bool, len(tables[kind]))
	for _, row := range tables[kind] {
		seen[[2]int{row.Harmonic, int(row.TimeLimit)}] = true
	}

	for _, row := range parseHarmonicRows(text) {
		key := [2]int{row.Harmonic, int(row.TimeLimit)}
		if seen[key] {
			continue
		}
		seen[key] = true
		tables[kind] = append(tables[kind], row)
	}
}

// parseHarmonicRows extracts measurement rows from section text using the
// row patterns in order of specificity.
func parseHarmonicRows(text string) []HarmonicRow {
	text = collapseSpaceRe.ReplaceAllString(text, " ")
	text = verdictSpacingRe.ReplaceAllString(text, "$1($2)")

	var rows []HarmonicRow
	seen := make(map[[2]int]bool)

	for patIdx, pattern := range harmonicRowPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			harmonic, err := strconv.Atoi(m[1])
			if err != nil || harmonic < MinHarmonic || harmonic > MaxHarmonic {
				continue
			}

			timeLimit, _ := strconv.ParseFloat(m[2], 64)
			regMax, _ := strconv.ParseFloat(m[3], 64)

			row := HarmonicRow{
				Harmonic:  harmonic,
				TimeLimit: timeLimit,
				RegMax:    regMax,
			}
			for i := 0; i < 3; i++ {
				row.Measured[i], _ = strconv.ParseFloat(m[4+i], 64)
			}

			switch patIdx {
			case 0:
				for i := 0; i < 3; i++ {
					row.Results[i] = m[7+2*i] + "(" + m[8+2*i] + ")"
				}
			case 1:
				for i := 0; i < 3; i++ {
					row.Results[i] = "Pass(" + m[7+i] + ")"
				}
			default:
				row.Results = [3]string{"N/A", "N/A", "N/A"}
			}

			key := [2]int{harmonic, int(timeLimit)}
			if seen[key] {
				continue
			}
			seen[key] = true
			rows = append(rows, row)
		}
	}

	return rows
}
