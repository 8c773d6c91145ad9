// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hatk-cli/internal/compliance"
	"hatk-cli/internal/export"
	"hatk-cli/internal/issue"
	"hatk-cli/internal/report"

	"github.com/spf13/cobra"
)

var (
	tablesOut           string
	tablesViolationsCSV string

	// tablesCmd extracts harmonic tables into Excel workbooks.
	tablesCmd = &cobra.Command{
		Use:   "tables <report>...",
		Short: "Extract harmonic tables to an Excel workbook",
		Long: `Extract harmonic tables to an Excel workbook.

With a single report the workbook carries one sheet per table, time
limit and harmonic parity. With multiple reports a bulk workbook is
produced with one sheet per report and table, the source file noted in
the first row. Out-of-limit measurements are highlighted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTables,
	}
)

func init() {
	tablesCmd.Flags().StringVarP(&tablesOut, "out", "o", "", "output workbook path")
	tablesCmd.Flags().StringVar(&tablesViolationsCSV, "violations-csv", "", "also write the limit violations as CSV")
}

func runTables(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return runTablesSingle(args[0])
	}
	return runTablesBulk(args)
}

func runTablesSingle(path string) error {
	doc, err := loadReportDocument(path)
	if err != nil {
		return err
	}

	tables := report.ExtractTables(doc)
	if !tables.HasData() {
		return &ExitError{Code: 1, Err: fmt.Errorf("no harmonic tables found in %s", doc.Name())}
	}

	data, err := export.WriteTables(tables)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	out := tablesOut
	if out == "" {
		out = stemOf(doc.Name()) + "_harmonics.xlsx"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("failed to write workbook: %w", err)}
	}
	fmt.Println(SuccessStyle.Render("✓") + " Wrote " + CmdStyle.Render(out))

	return writeViolations(compliance.AnalyzeAll(tables))
}

func runTablesBulk(paths []string) error {
	var files []export.BulkFile
	var allViolations []compliance.Violation

	for _, path := range paths {
		doc, err := loadReportDocument(path)
		if err != nil {
			return err
		}
		tables := report.ExtractTables(doc)
		if !tables.HasData() {
			fmt.Println(WarningStyle.Render("! ") + "No harmonic tables in " + CmdStyle.Render(doc.Name()))
			continue
		}
		files = append(files, export.BulkFile{Name: doc.Name(), Tables: tables})
		allViolations = append(allViolations, compliance.AnalyzeAll(tables)...)
	}

	if len(files) == 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("no harmonic tables found in any input")}
	}

	data, err := export.WriteBulk(files)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	out := tablesOut
	if out == "" {
		out = "harmonics_bulk.xlsx"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("failed to write workbook: %w", err)}
	}
	fmt.Printf("%s Wrote %s (%d reports)\n", SuccessStyle.Render("✓"), CmdStyle.Render(out), len(files))

	return writeViolations(allViolations)
}

func writeViolations(violations []compliance.Violation) error {
	if tablesViolationsCSV == "" {
		return nil
	}
	data, err := export.WriteViolationsCSV(violations)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if err := os.WriteFile(tablesViolationsCSV, data, 0o644); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("failed to write CSV: %w", err)}
	}
	fmt.Println(SuccessStyle.Render("✓") + " Wrote " + CmdStyle.Render(tablesViolationsCSV))
	return nil
}

func loadReportDocument(path string) (*report.Document, error) {
	doc, err := report.Load(path)
	if err != nil {
		return nil, &ExitError{Code: 1, Err: issue.NewContext().
			WithOperation("load report").
			WithResource(path).
			WithSuggestion("Only PDF and plain text reports are supported").
			Wrap(err).
			BuildError()}
	}
	return doc, nil
}

func stemOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
