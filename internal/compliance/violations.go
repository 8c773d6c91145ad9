// SPDX-License-Identifier: MPL-2.0

package compliance

import (
	"sort"

	"hatk-cli/internal/report"
)

// Violation records one phase of one harmonic exceeding its regulatory
// maximum.
type Violation struct {
	// Table is the source table's heading.
	Table string
	// Harmonic is the violating harmonic order.
	Harmonic int
	// Phase is the phase label (V1N/V2N/V3N or I1/I2/I3).
	Phase string
	// TimeLimit is the time-percentile the limit applies at.
	TimeLimit float64
	// Allowed is the regulatory maximum in percent.
	Allowed float64
	// Measured is the measured value in percent.
	Measured float64
	// Exceedance is Measured - Allowed.
	Exceedance float64
}

// AnalyzeTable finds every measured value above its row's regulatory
// maximum in one harmonic table.
func AnalyzeTable(kind report.TableKind, rows []report.HarmonicRow) []Violation {
	phases := kind.PhaseNames()

	var violations []Violation
	for _, row := range rows {
		for i := 0; i < 3; i++ {
			if row.Measured[i] <= row.RegMax {
				continue
			}
			violations = append(violations, Violation{
				Table:      kind.Title(),
				Harmonic:   row.Harmonic,
				Phase:      phases[i],
				TimeLimit:  row.TimeLimit,
				Allowed:    row.RegMax,
				Measured:   row.Measured[i],
				Exceedance: row.Measured[i] - row.RegMax,
			})
		}
	}
	return violations
}

// AnalyzeAll collects violations across all tables, sorted worst first:
// by exceedance descending, then harmonic descending.
func AnalyzeAll(tables report.TableSet) []Violation {
	var all []Violation
	for _, kind := range report.TableKinds {
		all = append(all, AnalyzeTable(kind, tables[kind])...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Exceedance != all[j].Exceedance {
			return all[i].Exceedance > all[j].Exceedance
		}
		return all[i].Harmonic > all[j].Harmonic
	})

	return all
}
