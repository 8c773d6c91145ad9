// SPDX-License-Identifier: MPL-2.0

package export

import (
	"fmt"

	"hatk-cli/internal/compliance"
	"hatk-cli/internal/report"

	"github.com/xuri/excelize/v2"
)

// Highlight colors for violating cells, matching the established report
// template.
const (
	failFillColor      = "FFC7CE"
	failFontColor      = "9C0006"
	harmonicFillColor  = "FFEB9C"
	defaultSheetToDrop = "Sheet1"
)

// workbookStyles caches the style IDs registered on one workbook.
type workbookStyles struct {
	fail     int
	harmonic int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	fail, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{failFillColor}, Pattern: 1},
		Font: &excelize.Font{Color: failFontColor, Bold: true},
	})
	if err != nil {
		return workbookStyles{}, fmt.Errorf("failed to register fail style: %w", err)
	}

	harmonic, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{harmonicFillColor}, Pattern: 1},
	})
	if err != nil {
		return workbookStyles{}, fmt.Errorf("failed to register harmonic style: %w", err)
	}

	return workbookStyles{fail: fail, harmonic: harmonic}, nil
}

// WriteTables renders one report's harmonic tables into a workbook with a
// sheet per (table, time-percentile, parity) combination. Returns the
// serialized workbook.
func WriteTables(tables report.TableSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	sheets := 0
	for _, kind := range report.TableKinds {
		rows := tables[kind]
		if len(rows) == 0 {
			continue
		}

		splits := compliance.Split(rows)
		for _, limit := range compliance.TimeLimits {
			split := splits[limit]
			for _, half := range []struct {
				odd  bool
				rows []report.HarmonicRow
			}{
				{odd: true, rows: split.Odd},
				{odd: false, rows: split.Even},
			} {
				if len(half.rows) == 0 {
					continue
				}
				name := SplitSheetName(kind, limit, half.odd)
				if err := writeTableSheet(f, styles, name, kind, half.rows, 1); err != nil {
					return nil, err
				}
				sheets++
			}
		}
	}

	if sheets > 0 {
		if err := f.DeleteSheet(defaultSheetToDrop); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BulkFile pairs a source report filename with its extracted tables.
type BulkFile struct {
	Name   string
	Tables report.TableSet
}

// WriteBulk renders multiple reports into one workbook: a sheet per
// (file, table) pair with a "File:" header row, short prefixed sheet
// names, and "_n" suffixes on collisions.
func WriteBulk(files []BulkFile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool)
	for _, file := range files {
		for _, kind := range report.TableKinds {
			rows := file.Tables[kind]
			if len(rows) == 0 {
				continue
			}

			name := DisambiguateSheetName(BulkSheetName(file.Name, kind), taken)
			taken[name] = true

			if err := writeTableSheet(f, styles, name, kind, rows, 2); err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, "A1", "File: "+file.Name); err != nil {
				return nil, fmt.Errorf("failed to write file header on %s: %w", name, err)
			}
		}
	}

	if len(taken) > 0 {
		if err := f.DeleteSheet(defaultSheetToDrop); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTableSheet writes one harmonic table starting with its header at
// headerRow, highlighting violating measured cells and their harmonic
// numbers.
func writeTableSheet(f *excelize.File, styles workbookStyles, name string, kind report.TableKind, rows []report.HarmonicRow, headerRow int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	headers := Headers(kind)
	headerCell, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(name, headerCell, &headers); err != nil {
		return fmt.Errorf("failed to write headers on %s: %w", name, err)
	}

	for i, row := range rows {
		rowNum := headerRow + 1 + i
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}

		values := []any{
			row.Harmonic, row.TimeLimit, row.RegMax,
			row.Measured[0], row.Measured[1], row.Measured[2],
			row.Results[0], row.Results[1], row.Results[2],
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row on %s: %w", name, err)
		}

		anyFailed := false
		for phase := 0; phase < 3; phase++ {
			if !row.Failed(phase) {
				continue
			}
			anyFailed = true

			measuredCell, err := excelize.CoordinatesToCellName(4+phase, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(name, measuredCell, measuredCell, styles.fail); err != nil {
				return fmt.Errorf("failed to style %s!%s: %w", name, measuredCell, err)
			}
		}

		if anyFailed {
			harmonicCell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(name, harmonicCell, harmonicCell, styles.harmonic); err != nil {
				return fmt.Errorf("failed to style %s!%s: %w", name, harmonicCell, err)
			}
		}
	}

	return nil
}
