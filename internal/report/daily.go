// SPDX-License-Identifier: MPL-2.0

package report

import (
	"regexp"
	"strconv"
	"strings"
)

// DailyReading is one row of a per-day distortion table: a date and the
// three per-phase percentages.
type DailyReading struct {
	// Day is the row's date as printed, dd-mm-yyyy.
	Day string
	// Phases holds the three phase values in report order
	// (V1N/V2N/V3N for voltage, I1/I2/I3 for current).
	Phases [3]float64
}

// DailyTables holds the two per-day distortion tables of a weekly summary.
type DailyTables struct {
	// VoltageTHD is the daily voltage total harmonic distortion table.
	VoltageTHD []DailyReading
	// CurrentTDD is the daily current total demand distortion table.
	CurrentTDD []DailyReading
}

var dailyRowRe = regexp.MustCompile(`^(\d{2}-\d{2}-\d{4})\b(.*)$`)

// ExtractDailyTables scans every page for the daily THD and TDD tables.
// A page contributes to the voltage table when it mentions both the daily
// distortion heading and the 3-second THD column, and to the current table
// for the TDD equivalents.
func ExtractDailyTables(doc *Document) DailyTables {
	var out DailyTables

	for _, page := range doc.Pages {
		isVoltage := strings.Contains(page, "Total Harmonic Distortion Daily") &&
			strings.Contains(page, "3sec THD")
		isCurrent := strings.Contains(page, "TDD Daily") &&
			strings.Contains(page, "3sec TDD")
		if !isVoltage && !isCurrent {
			continue
		}

		rows := extractDailyRows(page)
		if isVoltage {
			out.VoltageTHD = append(out.VoltageTHD, rows...)
		}
		if isCurrent {
			out.CurrentTDD = append(out.CurrentTDD, rows...)
		}
	}

	return out
}

// extractDailyRows pulls date-keyed rows out of page text. The printed
// table has six columns; the three phase values sit in columns 4-6 after
// the date and two aggregate columns.
func extractDailyRows(page string) []DailyReading {
	var rows []DailyReading

	for _, line := range strings.Split(page, "\n") {
		m := dailyRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		fields := strings.Fields(m[2])
		if len(fields) < 5 {
			continue
		}

		var reading DailyReading
		reading.Day = m[1]
		for i := 0; i < 3; i++ {
			reading.Phases[i] = coerceFloat(fields[2+i])
		}
		rows = append(rows, reading)
	}

	return rows
}

// coerceFloat converts a table cell to a float, treating anything
// non-numeric (blank cells, stray column headers) as zero.
func coerceFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch strings.ToUpper(s) {
	case "V1N", "V2N", "V3N", "I1", "I2", "I3":
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
