// SPDX-License-Identifier: MPL-2.0

package report

import "testing"

const voltageFullRangePage = `Harmonic Voltage Full Time Range
N [%] Reg Max[%] V1N V2N V3N Result
2 95 5.0 1.20 1.35 1.10 Pass (1.35%) Pass (1.40%) Pass (1.12%)
3 95 5.0 6.20 1.35 1.10 Fail (6.25%) Pass (1.40%) Pass (1.12%)
2 99 6.0 1.40 1.55 1.30 Pass (1.55%) Pass (1.60%) Pass (1.32%)
Total Harmonic Distortion Full Time Range
1 95 100 99.0 99.1 99.2 Pass (99.0%) Pass (99.1%) Pass (99.2%)
`

const voltageFullRangeContinuation = `4 95 5.0 0.80 0.75 0.82 Pass (0.82%) Pass (0.80%) Pass (0.85%)
5 95 6.0 2.10 2.05 2.20 Pass (2.20%) Pass (2.10%) Pass (2.25%)
`

const currentDailyStart = `Harmonic Current Daily
N [%] Reg Max[%] I1 I2 I3 Result
2 95 4.0 1.00 1.05 0.98 Pass (1.05%) Pass (1.08%) Pass (1.00%)
`

const currentDailyHarmonic5Page = `HARMONIC 5: TDD DAILY detail
3 95 4.0 1.50 1.45 1.60 Pass (1.60%) Pass (1.50%) Pass (1.65%)
`

const currentDailyBoundaryPage = `FLICKER SEVERITY
7 95 4.0 1.50 1.45 1.60 Pass (1.60%) Pass (1.50%) Pass (1.65%)
`

func TestExtractTablesSections(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path: "7 Days report.txt",
		Pages: []string{
			"metadata page",
			voltageFullRangePage,
			voltageFullRangeContinuation,
		},
	}

	tables := ExtractTables(doc)
	rows := tables[VoltageFullRange]

	if len(rows) != 5 {
		t.Fatalf("VoltageFullRange rows = %d, want 5", len(rows))
	}

	first := rows[0]
	if first.Harmonic != 2 || first.TimeLimit != 95 {
		t.Errorf("first row = H%d @%g", first.Harmonic, first.TimeLimit)
	}
	if first.RegMax != 5.0 {
		t.Errorf("RegMax = %g, want 5.0", first.RegMax)
	}
	if first.Measured != [3]float64{1.20, 1.35, 1.10} {
		t.Errorf("Measured = %v", first.Measured)
	}
	if first.Results[0] != "Pass(1.35%)" {
		t.Errorf("Results[0] = %q", first.Results[0])
	}

	// The fundamental (harmonic 1) after the section boundary must be
	// excluded twice over.
	for _, row := range rows {
		if row.Harmonic < MinHarmonic || row.Harmonic > MaxHarmonic {
			t.Errorf("row harmonic %d outside %d..%d", row.Harmonic, MinHarmonic, MaxHarmonic)
		}
	}

	// Continuation page rows belong to the still-active table.
	var found4, found5 bool
	for _, row := range rows {
		if row.Harmonic == 4 {
			found4 = true
		}
		if row.Harmonic == 5 {
			found5 = true
		}
	}
	if !found4 || !found5 {
		t.Errorf("continuation rows missing: H4=%v H5=%v", found4, found5)
	}
}

func TestExtractTablesFailVerdicts(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "report.txt",
		Pages: []string{"meta", voltageFullRangePage},
	}

	rows := ExtractTables(doc)[VoltageFullRange]

	var h3 *HarmonicRow
	for i := range rows {
		if rows[i].Harmonic == 3 && rows[i].TimeLimit == 95 {
			h3 = &rows[i]
		}
	}
	if h3 == nil {
		t.Fatal("harmonic 3 @95 not extracted")
	}
	if !h3.Failed(0) {
		t.Error("Failed(0) = false for explicit Fail verdict")
	}
	if h3.Failed(1) {
		t.Error("Failed(1) = true for passing phase")
	}
}

func TestExtractTablesHarmonic5Exception(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path: "Day 3 Night report.txt",
		Pages: []string{
			"meta",
			currentDailyStart,
			// "TDD DAILY" is a boundary for this table, but the
			// "HARMONIC 5:" sub-heading keeps the section alive.
			currentDailyHarmonic5Page,
			currentDailyBoundaryPage,
		},
	}

	rows := ExtractTables(doc)[CurrentDaily]

	harmonics := map[int]bool{}
	for _, row := range rows {
		harmonics[row.Harmonic] = true
	}
	if !harmonics[2] || !harmonics[3] {
		t.Errorf("expected harmonics 2 and 3, got %v", harmonics)
	}
	// The real boundary page must terminate the section.
	if harmonics[7] {
		t.Error("row after FLICKER SEVERITY boundary was extracted")
	}
}

func TestExtractTablesSkipsFirstPage(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "report.txt",
		Pages: []string{voltageFullRangePage},
	}

	if ExtractTables(doc).HasData() {
		t.Error("rows extracted from the metadata page")
	}
}

func TestExtractTablesDeduplicates(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path: "report.txt",
		Pages: []string{
			"meta",
			voltageFullRangePage,
			voltageFullRangePage,
		},
	}

	rows := ExtractTables(doc)[VoltageFullRange]
	seen := map[[2]int]int{}
	for _, row := range rows {
		seen[[2]int{row.Harmonic, int(row.TimeLimit)}]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Errorf("harmonic %d @%d extracted %d times", key[0], key[1], n)
		}
	}
}

func TestParseHarmonicRowsVerdictFallbacks(t *testing.T) {
	t.Parallel()

	// Rows without Pass/Fail words carry only the parenthesized values.
	rows := parseHarmonicRows(`2 95 5.0 1.20 1.35 1.10 (1.35%) (1.40%) (1.12%)`)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Results[0] != "Pass(1.35%)" {
		t.Errorf("Results[0] = %q", rows[0].Results[0])
	}

	// Bare measurement rows get placeholder verdicts.
	rows = parseHarmonicRows(`6 99 5.0 1.20 1.35 1.10`)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Results != [3]string{"N/A", "N/A", "N/A"} {
		t.Errorf("Results = %v", rows[0].Results)
	}
}

func TestParseHarmonicRowsIgnoresStrayNumbers(t *testing.T) {
	t.Parallel()

	// Number runs from page furniture (timestamps, footers) on carried-over
	// pages must not read as measurement rows; only runs whose %time column
	// is 95 or 99 qualify for the bare form.
	text := `Generated 21 05 2025 18 30 00
Page 12 of 48 1.5 2.5 3.5
7 95 5.00 1.10 1.20 1.30`

	rows := parseHarmonicRows(text)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want only the genuine measurement row", len(rows))
	}
	if rows[0].Harmonic != 7 || rows[0].TimeLimit != 95 {
		t.Errorf("row = harmonic %d %%time %v, want 7/95", rows[0].Harmonic, rows[0].TimeLimit)
	}
	if rows[0].Results != [3]string{"N/A", "N/A", "N/A"} {
		t.Errorf("Results = %v", rows[0].Results)
	}
}

func TestParseHarmonicRowsFiltersRange(t *testing.T) {
	t.Parallel()

	text := `1 95 100 99.0 99.1 99.2
51 95 5.0 1.0 1.0 1.0
2025 95 5.0 1.0 1.0 1.0
50 95 5.0 1.0 1.0 1.0`

	rows := parseHarmonicRows(text)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (only harmonic 50)", len(rows))
	}
	if rows[0].Harmonic != 50 {
		t.Errorf("Harmonic = %d, want 50", rows[0].Harmonic)
	}
}

func TestTableKindAccessors(t *testing.T) {
	t.Parallel()

	if !CurrentDaily.IsCurrent() || !CurrentDaily.IsDaily() {
		t.Error("CurrentDaily accessors wrong")
	}
	if VoltageFullRange.IsCurrent() || VoltageFullRange.IsDaily() {
		t.Error("VoltageFullRange accessors wrong")
	}
	if got := CurrentFullRange.PhaseNames(); got != [3]string{"I1", "I2", "I3"} {
		t.Errorf("PhaseNames = %v", got)
	}
	if got := VoltageDaily.PhaseNames(); got != [3]string{"V1N", "V2N", "V3N"} {
		t.Errorf("PhaseNames = %v", got)
	}
	if VoltageDaily.Title() != "Harmonic Voltage Daily" {
		t.Errorf("Title = %q", VoltageDaily.Title())
	}
}
