// SPDX-License-Identifier: MPL-2.0

package compliance

import "hatk-cli/internal/report"

// Per-day remark strings as they appear in the generated summary.
const (
	RemarkWithinLimits = "All values within limits"
	RemarkExceeded     = "Some values exceed limits"
)

// DailySummary is one day of a distortion summary table: the three phase
// values judged against the recommended limit.
type DailySummary struct {
	// Day is the row's date, dd-mm-yyyy.
	Day string
	// Limit is the recommended limit applied, in percent.
	Limit float64
	// R, Y, B are the per-phase values in percent, in phase order.
	R, Y, B float64
	// Remark states whether all phases stayed within the limit.
	Remark string
}

// Compliant reports whether every phase stayed within the limit.
func (s DailySummary) Compliant() bool {
	return s.Remark == RemarkWithinLimits
}

// SummarizeDaily judges each daily reading against a limit. Readings map
// onto the R/Y/B phases in report order.
func SummarizeDaily(readings []report.DailyReading, limit float64) []DailySummary {
	summaries := make([]DailySummary, 0, len(readings))
	for _, r := range readings {
		s := DailySummary{
			Day:    r.Day,
			Limit:  limit,
			R:      r.Phases[0],
			Y:      r.Phases[1],
			B:      r.Phases[2],
			Remark: RemarkWithinLimits,
		}
		if s.R > limit || s.Y > limit || s.B > limit {
			s.Remark = RemarkExceeded
		}
		summaries = append(summaries, s)
	}
	return summaries
}
