// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"hatk-cli/internal/issue"
	"hatk-cli/pkg/hatkfile"
)

// RunCommand executes a manifest helper command by name. Interactive
// commands attach a PTY where the platform supports one; everything else
// runs with plain pipes.
func RunCommand(ctx context.Context, h *hatkfile.Hatkfile, name string, args []string, defaultRuntime hatkfile.RuntimeMode, stdin io.Reader, stdout, stderr io.Writer) (*Result, error) {
	cmd := h.FindCommand(name)
	if cmd == nil {
		return nil, issue.NewContext().
			WithOperation(fmt.Sprintf("run command %q", name)).
			WithResource(h.FilePath).
			WithSuggestion("Run 'hatk run' without arguments to list available commands").
			Wrap(fmt.Errorf("command %q not declared in manifest", name)).
			BuildError()
	}

	shell := cmd.Shell
	if shell == "" {
		shell = h.DefaultShell
	}
	workDir := cmd.WorkDir
	if workDir == "" {
		workDir = hookWorkDir(h)
	}

	if cmd.Interactive && ptySupported() {
		return runInteractive(ctx, cmd, shell, workDir, args)
	}

	rt, err := ForMode(cmd.Runtime, defaultRuntime)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", name, err)
	}

	result := rt.Execute(&ExecContext{
		Context: ctx,
		Script:  cmd.Script,
		Shell:   shell,
		WorkDir: workDir,
		Env:     cmd.Env,
		Args:    args,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
	})
	return result, nil
}

// runInteractive runs the command's script under a PTY attached to the
// caller's terminal. Interactive commands always use the system shell;
// the embedded interpreter has no terminal of its own.
func runInteractive(ctx context.Context, c *hatkfile.Command, shell, workDir string, args []string) (*Result, error) {
	resolved, err := resolveShell(shell)
	if err != nil {
		return nil, err
	}

	shellArgv := shellArgs(resolved)
	shellArgv = append(shellArgv, c.Script)
	shellArgv = appendPositionalArgs(resolved, shellArgv, args)

	execCmd := exec.CommandContext(ctx, resolved, shellArgv...)
	execCmd.Dir = workDir
	execCmd.Env = append(os.Environ(), envToSlice(c.Env)...)

	exitCode, err := runWithPty(execCmd)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}, nil
	}
	return &Result{ExitCode: exitCode}, nil
}
