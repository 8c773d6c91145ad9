// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hatk-cli/internal/graphs"
	"hatk-cli/internal/issue"

	"github.com/spf13/cobra"
)

var (
	graphsOutDir string
	graphsZip    bool

	// graphsCmd extracts graph images from DOCX documents.
	graphsCmd = &cobra.Command{
		Use:   "graphs <document.docx>",
		Short: "Extract graph images from a DOCX document",
		Long: `Extract graph images from a DOCX document.

Embedded media is filtered with a chart heuristic so photos, logos and
decorations are left behind; the surviving images are written out as
sequentially numbered chart files.`,
		Args: cobra.ExactArgs(1),
		RunE: runGraphs,
	}
)

func init() {
	graphsCmd.Flags().StringVar(&graphsOutDir, "out-dir", "", "output directory (default <document>_graphs)")
	graphsCmd.Flags().BoolVar(&graphsZip, "zip", false, "also write a zip archive of the extracted images")
}

func runGraphs(_ *cobra.Command, args []string) error {
	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return &ExitError{Code: 1, Err: fmt.Errorf("%s is not a DOCX document", path)}
	}

	outDir := graphsOutDir
	if outDir == "" {
		outDir = stemOf(path) + "_graphs"
	}

	images, err := graphs.ExtractDOCX(path, outDir)
	if err != nil {
		return &ExitError{Code: 1, Err: issue.NewContext().
			WithOperation("extract graphs").
			WithResource(path).
			WithSuggestion("Make sure the file is a DOCX document (a zip archive with embedded media)").
			Wrap(err).
			BuildError()}
	}

	if len(images) == 0 {
		fmt.Println(WarningStyle.Render("! ") + "No graph-like images found in " + CmdStyle.Render(filepath.Base(path)))
		return nil
	}

	for _, img := range images {
		fmt.Printf("%s %s %s\n",
			SuccessStyle.Render("✓"),
			CmdStyle.Render(filepath.Join(outDir, img.Name)),
			SubtitleStyle.Render(fmt.Sprintf("(%dx%d, from %s)", img.Width, img.Height, img.Source)))
	}
	fmt.Printf("Extracted %d image(s) to %s\n", len(images), CmdStyle.Render(outDir))

	if graphsZip {
		data, err := graphs.ZipImages(outDir)
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}
		zipPath := outDir + ".zip"
		if err := os.WriteFile(zipPath, data, 0o644); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("failed to write archive: %w", err)}
		}
		fmt.Println(SuccessStyle.Render("✓") + " Wrote " + CmdStyle.Render(zipPath))
	}

	return nil
}
