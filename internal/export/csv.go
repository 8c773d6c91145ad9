// SPDX-License-Identifier: MPL-2.0

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"hatk-cli/internal/compliance"
)

// violationHeaders are the CSV columns of a violation report.
var violationHeaders = []string{
	"Harmonic", "Phase", "Time Limit (%)", "Allowed (%)",
	"Measured (%)", "Exceedance (%)", "Table",
}

// WriteViolationsCSV renders violations (already sorted worst first) as a
// CSV document.
func WriteViolationsCSV(violations []compliance.Violation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(violationHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, v := range violations {
		record := []string{
			strconv.Itoa(v.Harmonic),
			v.Phase,
			formatFloat(v.TimeLimit),
			formatFloat(v.Allowed),
			formatFloat(v.Measured),
			formatFloat(v.Exceedance),
			v.Table,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
