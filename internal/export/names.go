// SPDX-License-Identifier: MPL-2.0

// Package export renders analysis results into downloadable artifacts:
// Excel workbooks with violation highlighting and CSV violation reports.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"hatk-cli/internal/report"
)

// maxSheetNameLen is the spreadsheet format's sheet name limit.
const maxSheetNameLen = 31

var (
	dayPeriodRe = regexp.MustCompile(`DAY\s*(\d+)\s*(DAY|NIGHT)`)
	dayOnlyRe   = regexp.MustCompile(`DAY\s*(\d+)`)
	nonWordRe   = regexp.MustCompile(`[^\w]`)
)

// SheetPrefix derives a short per-file prefix for bulk workbook sheet
// names: "7Days" for weekly summaries, "3D"/"3N" for day/night daily
// reports, or a sanitized filename fragment.
func SheetPrefix(filename string) string {
	upper := strings.ToUpper(filename)

	if strings.Contains(upper, "7") && strings.Contains(upper, "DAY") {
		return "7Days"
	}

	if m := dayPeriodRe.FindStringSubmatch(upper); m != nil {
		period := "D"
		if m[2] == "NIGHT" {
			period = "N"
		}
		return m[1] + period
	}

	if m := dayOnlyRe.FindStringSubmatch(upper); m != nil {
		return m[1] + "D"
	}

	clean := nonWordRe.ReplaceAllString(strings.TrimSuffix(filename, ".pdf"), "")
	if len(clean) > 4 {
		clean = clean[:4]
	}
	return clean
}

// TableAbbrev returns the two-letter table code: V or I for the quantity,
// F or D for full-range or daily.
func TableAbbrev(kind report.TableKind) string {
	quantity := "V"
	if kind.IsCurrent() {
		quantity = "I"
	}
	span := "F"
	if kind.IsDaily() {
		span = "D"
	}
	return quantity + span
}

// SplitSheetName builds a per-file workbook sheet name such as
// "H_VF_95_O".
func SplitSheetName(kind report.TableKind, timeLimit float64, odd bool) string {
	parity := "E"
	if odd {
		parity = "O"
	}
	name := fmt.Sprintf("H_%s_%.0f_%s", TableAbbrev(kind), timeLimit, parity)
	return truncateSheetName(name)
}

// BulkSheetName builds a bulk workbook sheet name such as "7Days_H_VF".
func BulkSheetName(filename string, kind report.TableKind) string {
	return truncateSheetName(SheetPrefix(filename) + "_H_" + TableAbbrev(kind))
}

// DisambiguateSheetName appends "_n" suffixes until the name is unused,
// keeping within the sheet name limit.
func DisambiguateSheetName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for counter := 1; ; counter++ {
		suffix := fmt.Sprintf("_%d", counter)
		candidate := name + suffix
		if len(candidate) > maxSheetNameLen {
			candidate = name[:maxSheetNameLen-len(suffix)] + suffix
		}
		if !taken[candidate] {
			return candidate
		}
	}
}

func truncateSheetName(name string) string {
	if len(name) > maxSheetNameLen {
		return name[:maxSheetNameLen]
	}
	return name
}

// Headers returns the column headers for a harmonic table sheet.
func Headers(kind report.TableKind) []string {
	phases := kind.PhaseNames()
	return []string{
		"N", "[%]", "Reg Max[%]",
		"Measured_" + phases[0], "Measured_" + phases[1], "Measured_" + phases[2],
		"Result_" + phases[0], "Result_" + phases[1], "Result_" + phases[2],
	}
}
