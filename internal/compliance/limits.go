// SPDX-License-Identifier: MPL-2.0

// Package compliance evaluates extracted report measurements against
// regulatory limits: daily distortion summaries, harmonic violation
// analysis, time-limit and parity splits, and the generating-hours
// schedule.
package compliance

// Default daily limits per the governing standard.
const (
	// DefaultVoltageDailyLimit is the daily voltage THD limit in percent.
	DefaultVoltageDailyLimit = 7.5
	// DefaultCurrentDailyLimit is the daily current TDD limit in percent.
	DefaultCurrentDailyLimit = 10.0
)

// Limits holds the daily compliance limits in percent.
type Limits struct {
	VoltageDaily float64
	CurrentDaily float64
}

// DefaultLimits returns the built-in daily limits.
func DefaultLimits() Limits {
	return Limits{
		VoltageDaily: DefaultVoltageDailyLimit,
		CurrentDaily: DefaultCurrentDailyLimit,
	}
}

// WithOverrides returns a copy with any positive override applied. Zero
// overrides keep the built-in limit.
func (l Limits) WithOverrides(voltage, current float64) Limits {
	if voltage > 0 {
		l.VoltageDaily = voltage
	}
	if current > 0 {
		l.CurrentDaily = current
	}
	return l
}
