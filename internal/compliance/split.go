// SPDX-License-Identifier: MPL-2.0

package compliance

import (
	"sort"

	"hatk-cli/internal/report"
)

// TimeLimits lists the time-percentiles a harmonic table is split by.
var TimeLimits = []float64{95, 99}

// ParitySplit holds one time-percentile's rows divided by harmonic parity,
// each half sorted by harmonic order.
type ParitySplit struct {
	Odd  []report.HarmonicRow
	Even []report.HarmonicRow
}

// Empty reports whether neither half has rows.
func (p ParitySplit) Empty() bool {
	return len(p.Odd) == 0 && len(p.Even) == 0
}

// Split divides a table's rows by time-percentile and harmonic parity.
// The returned map is keyed by the values in TimeLimits.
func Split(rows []report.HarmonicRow) map[float64]ParitySplit {
	out := make(map[float64]ParitySplit, len(TimeLimits))
	for _, limit := range TimeLimits {
		var subset []report.HarmonicRow
		for _, row := range rows {
			if row.TimeLimit == limit {
				subset = append(subset, row)
			}
		}
		sort.Slice(subset, func(i, j int) bool {
			return subset[i].Harmonic < subset[j].Harmonic
		})

		var split ParitySplit
		for _, row := range subset {
			if row.Harmonic%2 == 1 {
				split.Odd = append(split.Odd, row)
			} else {
				split.Even = append(split.Even, row)
			}
		}
		out[limit] = split
	}
	return out
}

// MissingHarmonics lists the expected harmonic orders absent from rows,
// restricted to odd or even orders. Parity is 1 for odd, 0 for even.
func MissingHarmonics(rows []report.HarmonicRow, parity int) []int {
	found := make(map[int]bool, len(rows))
	for _, row := range rows {
		found[row.Harmonic] = true
	}

	var missing []int
	for h := report.MinHarmonic; h <= report.MaxHarmonic; h++ {
		if h%2 != parity {
			continue
		}
		if !found[h] {
			missing = append(missing, h)
		}
	}
	return missing
}
