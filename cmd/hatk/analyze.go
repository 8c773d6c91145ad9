// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"hatk-cli/internal/compliance"
	"hatk-cli/internal/export"
	"hatk-cli/internal/issue"
	"hatk-cli/internal/report"

	"github.com/spf13/cobra"
)

var (
	analyzeCSVDir string
	analyzeForce  bool

	// analyzeCmd runs the one-shot weekly summary analysis.
	analyzeCmd = &cobra.Command{
		Use:   "analyze <report>",
		Short: "Analyze a weekly harmonic report in the terminal",
		Long: `Analyze a weekly harmonic report in the terminal.

Prints the report metadata, the generating-hours schedule, the daily
voltage THD and current TDD compliance summaries, the recorded voltage
events, and any harmonic limit violations.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCSVDir, "csv", "", "directory to write CSV exports into")
	analyzeCmd.Flags().BoolVar(&analyzeForce, "force", false, "analyze even when the filename is not weekly-shaped")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	path := args[0]

	if !report.IsWeekly(filepath.Base(path)) && !analyzeForce {
		renderIssue(issue.UnsupportedReportId)
		return &ExitError{Code: 1, Err: fmt.Errorf("%q is not a weekly report (use --force to analyze anyway)", filepath.Base(path))}
	}

	doc, err := report.Load(path)
	if err != nil {
		return &ExitError{Code: 1, Err: issue.NewContext().
			WithOperation("load report").
			WithResource(path).
			WithSuggestion("Only PDF and plain text reports are supported").
			Wrap(err).
			BuildError()}
	}

	cfg := currentConfig()
	limits := compliance.DefaultLimits().
		WithOverrides(cfg.Limits.VoltageDaily, cfg.Limits.CurrentDaily)

	meta := report.ExtractMetadata(doc)
	daily := report.ExtractDailyTables(doc)
	events := report.ExtractEvents(doc)
	tables := report.ExtractTables(doc)
	violations := compliance.AnalyzeAll(tables)

	printMetadata(doc.Name(), meta)
	printSchedule(compliance.BuildSchedule(meta))
	printDailySummaries("Daily Voltage THD", limits.VoltageDaily,
		compliance.SummarizeDaily(daily.VoltageTHD, limits.VoltageDaily))
	printDailySummaries("Daily Current TDD", limits.CurrentDaily,
		compliance.SummarizeDaily(daily.CurrentTDD, limits.CurrentDaily))
	printEvents(events)
	printViolations(violations)

	if analyzeCSVDir != "" {
		if err := writeAnalysisCSV(doc.Name(), violations); err != nil {
			return &ExitError{Code: 1, Err: err}
		}
	}

	return nil
}

func printMetadata(name string, meta report.Metadata) {
	fmt.Println(TitleStyle.Render("Report: ") + CmdStyle.Render(name))
	fmt.Println()
	for _, row := range [][2]string{
		{"Component", meta.Component},
		{"Company", meta.Company},
		{"Block", meta.Block},
		{"Feeder", meta.Feeder},
		{"Start time", meta.StartTime},
		{"End time", meta.EndTime},
		{"GMT", meta.GMT},
		{"Report version", meta.Version},
		{"Feeder name", meta.FeederName},
		{"Network nominal", meta.NetworkNominal},
	} {
		fmt.Printf("  %s %s\n", SubtitleStyle.Render(fmt.Sprintf("%-16s", row[0])), row[1])
	}
	fmt.Println()
}

func printSchedule(rows []compliance.ScheduleRow) {
	fmt.Println(TitleStyle.Render("Generating Hours Schedule"))
	fmt.Printf("  %-3s %-11s %-9s %-11s %-9s %s\n", "#", "From", "", "To", "", "Description")
	for _, r := range rows {
		fmt.Printf("  %-3d %-11s %-9s %-11s %-9s %s\n",
			r.Index, r.DateFrom, r.TimeFrom, r.DateTo, r.TimeTo, r.Description)
	}
	fmt.Println()
}

func printDailySummaries(title string, limit float64, rows []compliance.DailySummary) {
	fmt.Println(TitleStyle.Render(title) + SubtitleStyle.Render(fmt.Sprintf(" (limit %.1f%%)", limit)))
	if len(rows) == 0 {
		fmt.Println(SubtitleStyle.Render("  no daily table found"))
		fmt.Println()
		return
	}
	fmt.Printf("  %-12s %8s %8s %8s  %s\n", "Day", "R", "Y", "B", "Remark")
	for _, r := range rows {
		remark := SuccessStyle.Render(r.Remark)
		if !r.Compliant() {
			remark = FailCellStyle.Render(r.Remark)
		}
		fmt.Printf("  %-12s %8.2f %8.2f %8.2f  %s\n", r.Day, r.R, r.Y, r.B, remark)
	}
	fmt.Println()
}

func printEvents(events []report.Event) {
	fmt.Println(TitleStyle.Render("Event Summary"))
	if len(events) == 0 {
		fmt.Println(SubtitleStyle.Render("  no events recorded"))
		fmt.Println()
		return
	}
	for _, kind := range []string{"Swell", "Dip", "Interruption", "Transient"} {
		if n := report.CountEvents(events, kind); n > 0 {
			fmt.Printf("  %s %d\n", SubtitleStyle.Render(fmt.Sprintf("%-14s", kind)), n)
		}
	}
	fmt.Printf("  %-14s %-6s %-26s %-10s %s\n", "Type", "Phase", "Start Time", "Duration", "Deviation")
	for _, e := range events {
		fmt.Printf("  %-14s %-6s %-26s %-10s %s\n", e.Type, e.Phase, e.StartTime, e.Duration, e.Deviation)
	}
	fmt.Println()
}

func printViolations(violations []compliance.Violation) {
	fmt.Println(TitleStyle.Render("Harmonic Limit Violations"))
	if len(violations) == 0 {
		fmt.Println(SuccessStyle.Render("  all harmonic measurements within limits"))
		fmt.Println()
		return
	}
	fmt.Printf("  %-4s %-6s %-6s %9s %9s %11s  %s\n",
		"N", "Phase", "Limit", "Allowed", "Measured", "Exceedance", "Table")
	for _, v := range violations {
		fmt.Printf("  %-4d %-6s %-6g %9.2f %9.2f %11s  %s\n",
			v.Harmonic, v.Phase, v.TimeLimit, v.Allowed, v.Measured,
			FailCellStyle.Render(fmt.Sprintf("+%.2f", v.Exceedance)), v.Table)
	}
	fmt.Println()
}

// writeAnalysisCSV exports the violation list next to the other CSV
// artifacts in the requested directory.
func writeAnalysisCSV(reportName string, violations []compliance.Violation) error {
	if err := os.MkdirAll(analyzeCSVDir, 0o755); err != nil {
		return fmt.Errorf("failed to create CSV directory: %w", err)
	}

	data, err := export.WriteViolationsCSV(violations)
	if err != nil {
		return err
	}

	path := filepath.Join(analyzeCSVDir, stemOf(reportName)+"_violations.csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Println(SuccessStyle.Render("✓") + " Wrote " + CmdStyle.Render(path))
	return nil
}
