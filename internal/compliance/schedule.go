// SPDX-License-Identifier: MPL-2.0

package compliance

import (
	"fmt"
	"time"

	"hatk-cli/internal/report"
)

// Generating-hours boundaries. A solar feeder generates between 06:00 and
// 18:30; the remainder of the day is the non-generating period.
const (
	generatingStart = "06:00 AM"
	generatingEnd   = "06:30 PM"
)

// ScheduleRow is one period of the generating/non-generating time table.
type ScheduleRow struct {
	Index       int
	DateFrom    string
	TimeFrom    string
	DateTo      string
	TimeTo      string
	Description string
}

// fallbackWindow returns the fixed report window used when metadata is
// absent or unparseable.
func fallbackWindow() (time.Time, time.Time) {
	start := time.Date(2025, time.May, 14, 6, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 7)
}

// BuildSchedule derives the generating-hours time table from the report
// window: one overall row, then for each of the seven days a generating
// row and a non-generating row spanning into the next day.
func BuildSchedule(meta report.Metadata) []ScheduleRow {
	start, end, ok := meta.Window()
	if !ok {
		start, end = fallbackWindow()
	}

	rows := []ScheduleRow{{
		Index:       1,
		DateFrom:    start.Format("02/01/2006"),
		TimeFrom:    start.Format("03:04 PM"),
		DateTo:      end.Format("02/01/2006"),
		TimeTo:      end.Format("03:04 PM"),
		Description: "7 Days Report",
	}}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for i := 0; i < 7; i++ {
		current := day.AddDate(0, 0, i)
		next := current.AddDate(0, 0, 1)

		rows = append(rows, ScheduleRow{
			Index:    len(rows) + 1,
			DateFrom: current.Format("02/01/2006"),
			TimeFrom: generatingStart,
			DateTo:   current.Format("02/01/2006"),
			TimeTo:   generatingEnd,
			Description: fmt.Sprintf("Day %d (%s) Generating Hours",
				i+1, current.Format("02-01-2006")),
		})

		rows = append(rows, ScheduleRow{
			Index:    len(rows) + 1,
			DateFrom: current.Format("02/01/2006"),
			TimeFrom: generatingEnd,
			DateTo:   next.Format("02/01/2006"),
			TimeTo:   generatingStart,
			Description: fmt.Sprintf("Night %d (%s to %s) Non-Generating Hours",
				i+1, current.Format("02-01-2006"), next.Format("02-01-2006")),
		})
	}

	return rows
}
