// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a new hatkfile.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new hatkfile in the current directory",
		Long: `Create a new hatkfile in the current directory with the standard
analysis modules and example helper commands to get started quickly.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing hatkfile")
}

const starterHatkfile = `// hatkfile - toolkit manifest for hatk
// Validated against the embedded CUE schema on load.

toolkit:     "Harmonic Analysis Toolkit"
description: "Weekly power quality report analysis"
version:     "0.1.0"

modules: [
	{
		name:        "Weekly Summary"
		kind:        "summary"
		description: "Report metadata, schedule and daily THD/TDD compliance"
		icon:        "📈"
	},
	{
		name:        "Harmonic Tables"
		kind:        "tables"
		description: "Harmonic tables with limit checks and Excel export"
		icon:        "📋"
	},
	{
		name:        "Graph Extraction"
		kind:        "graphs"
		description: "Chart images from DOCX documents"
		icon:        "🖼"
	},
]

entry: "Weekly Summary"

commands: [
	{
		name:        "list-reports"
		description: "List report files in the reports directory"
		script:      "ls -1 *.pdf *.txt 2>/dev/null || true"
		runtime:     "virtual"
	},
]

server: {
	addr:        "127.0.0.1"
	port:        0 // auto-select a free port
	reports_dir: "."
}
`

func runInit(cmd *cobra.Command, args []string) error {
	filename := "hatkfile.cue"
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(starterHatkfile), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Drop weekly report PDFs next to the manifest")
	fmt.Println("  2. Run 'hatk check' to validate the manifest")
	fmt.Println("  3. Run 'hatk serve' to start an analysis session")
	return nil
}
