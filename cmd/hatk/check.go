// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"hatk-cli/internal/launch"

	"github.com/spf13/cobra"
)

// checkCmd validates the manifest and its declared dependencies.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest and its dependencies",
	Long: `Validate the manifest and its dependencies.

Parses and validates the toolkit manifest, then runs every depends_on
check (tools in PATH, required files, environment variables). All
failures are reported at once.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the toolkit manifest")
}

func runCheck(_ *cobra.Command, _ []string) error {
	h, err := loadManifest()
	if err != nil {
		return err
	}

	fmt.Println(SuccessStyle.Render("✓") + " Manifest " + CmdStyle.Render(h.FilePath) + " is valid")
	fmt.Printf("  toolkit %q, %d module(s), %d command(s), %d setup hook(s)\n",
		h.Toolkit, len(h.Modules), len(h.Commands), len(h.Setup))

	if h.DependsOn == nil {
		fmt.Println(SubtitleStyle.Render("  no dependencies declared"))
		return nil
	}

	failures := launch.CheckDependencies(h)
	if len(failures) == 0 {
		fmt.Println(SuccessStyle.Render("✓") + " All dependencies satisfied")
		return nil
	}

	fmt.Println(ErrorStyle.Render(fmt.Sprintf("✗ %d unsatisfied dependencies:", len(failures))))
	for _, f := range failures {
		fmt.Println("  - " + f.String())
	}
	return &ExitError{Code: 1, Err: launch.DependencyError(failures)}
}
