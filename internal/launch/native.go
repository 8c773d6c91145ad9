// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// NativeRuntime executes scripts with the host system shell.
type NativeRuntime struct{}

// NewNativeRuntime creates a native runtime.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return "native"
}

// Available reports whether a usable shell exists on this host.
func (r *NativeRuntime) Available() bool {
	_, err := resolveShell("")
	return err == nil
}

// Execute runs a script via the system shell.
func (r *NativeRuntime) Execute(ec *ExecContext) *Result {
	shell, err := resolveShell(ec.Shell)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	args := shellArgs(shell)
	args = append(args, ec.Script)
	args = appendPositionalArgs(shell, args, ec.Args)

	cmd := exec.CommandContext(ec.Context, shell, args...)
	cmd.Dir = ec.WorkDir
	cmd.Env = append(os.Environ(), envToSlice(ec.Env)...)
	cmd.Stdin = ec.Stdin
	cmd.Stdout = ec.Stdout
	cmd.Stderr = ec.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to execute script: %w", err)}
	}
	return &Result{ExitCode: 0}
}

// resolveShell finds the shell to use, honoring an explicit override.
func resolveShell(override string) (string, error) {
	if override != "" {
		if filepath.IsAbs(override) {
			return override, nil
		}
		return exec.LookPath(override)
	}

	switch runtime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

func shellArgs(shell string) []string {
	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}

// appendPositionalArgs exposes args as $1, $2, ... for POSIX shells and
// $args for PowerShell. cmd.exe has no inline positional support.
func appendPositionalArgs(shell string, args, positional []string) []string {
	if len(positional) == 0 {
		return args
	}

	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return args
	case "powershell", "pwsh":
		return append(args, positional...)
	default:
		args = append(args, "hatk") // $0 placeholder
		return append(args, positional...)
	}
}

func envToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
