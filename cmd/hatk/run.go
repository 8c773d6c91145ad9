// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"hatk-cli/internal/issue"
	"hatk-cli/internal/launch"
	"hatk-cli/pkg/hatkfile"
	"hatk-cli/pkg/types"

	"github.com/spf13/cobra"
)

var (
	runRuntime     string
	runInteractive bool

	// runCmd executes a manifest-declared helper command.
	runCmd = &cobra.Command{
		Use:   "run [command] [args...]",
		Short: "Run a helper command declared in the manifest",
		Long: `Run a helper command declared in the manifest.

Without arguments, lists the available commands. Arguments after the
command name become the script's positional parameters.`,
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the toolkit manifest")
	runCmd.Flags().StringVar(&runRuntime, "runtime", "", "override the runtime (native or virtual)")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "attach a PTY to the command")
}

func runRun(cmd *cobra.Command, args []string) error {
	h, err := loadManifest()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		listCommands(h)
		return nil
	}

	name := args[0]
	mode := hatkfile.RuntimeMode(runRuntime)
	if !mode.IsValid() {
		return &ExitError{Code: 1, Err: fmt.Errorf("unknown runtime %q (want native or virtual)", runRuntime)}
	}

	c := h.FindCommand(name)
	if c == nil {
		renderIssue(issue.CommandNotFoundId)
	} else {
		// Flags override the manifest's per-command settings.
		if mode != "" {
			c.Runtime = mode
		}
		if runInteractive {
			c.Interactive = true
		}
	}

	defaultRuntime := hatkfile.RuntimeMode(currentConfig().DefaultRuntime)
	result, err := launch.RunCommand(cmd.Context(), h, name, args[1:], defaultRuntime,
		os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if result.Error != nil {
		return &ExitError{Code: 1, Err: result.Error}
	}
	if result.ExitCode != 0 {
		return &ExitError{Code: types.ExitCode(result.ExitCode)}
	}
	return nil
}

func listCommands(h *hatkfile.Hatkfile) {
	if len(h.Commands) == 0 {
		fmt.Println(SubtitleStyle.Render("The manifest declares no helper commands."))
		return
	}

	fmt.Println(TitleStyle.Render("Available commands") + SubtitleStyle.Render(" ("+h.Toolkit+")"))
	for _, c := range h.Commands {
		line := "  " + CmdStyle.Render(fmt.Sprintf("%-20s", c.Name))
		if c.Description != "" {
			line += " " + c.Description
		}
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Run one with: hatk run <command> [args...]"))
}
