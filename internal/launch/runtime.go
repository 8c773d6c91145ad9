// SPDX-License-Identifier: MPL-2.0

// Package launch prepares and runs an analysis session: validating the
// manifest's dependencies, running setup hooks, executing helper commands,
// and handing off to the session server.
package launch

import (
	"context"
	"fmt"
	"io"

	"hatk-cli/pkg/hatkfile"
)

type (
	// ExecContext carries everything a runtime needs to run one script.
	ExecContext struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Script is the script body to run.
		Script string
		// Shell overrides the shell for the native runtime.
		Shell string
		// WorkDir is the working directory; empty means the process cwd.
		WorkDir string
		// Env holds additional environment variables.
		Env map[string]string
		// Args become the script's positional parameters.
		Args []string

		// Stdin, Stdout, Stderr are the script's I/O streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Result is the outcome of one script execution.
	Result struct {
		// ExitCode is the script's exit code.
		ExitCode int
		// Error is set for failures outside the script itself.
		Error error
	}

	// Runtime runs manifest scripts in a particular execution
	// environment.
	Runtime interface {
		// Name returns the runtime name as used in manifests.
		Name() string
		// Available reports whether the runtime can run on this host.
		Available() bool
		// Execute runs a script to completion.
		Execute(ec *ExecContext) *Result
	}
)

// Failed reports whether the execution did not complete successfully.
func (r *Result) Failed() bool {
	return r.Error != nil || r.ExitCode != 0
}

// ForMode returns the runtime implementing a manifest runtime mode.
// An empty mode selects the given default.
func ForMode(mode, fallback hatkfile.RuntimeMode) (Runtime, error) {
	if mode == "" {
		mode = fallback
	}
	switch mode {
	case hatkfile.RuntimeNative, "":
		return NewNativeRuntime(), nil
	case hatkfile.RuntimeVirtual:
		return NewVirtualRuntime(), nil
	default:
		return nil, fmt.Errorf("unknown runtime mode %q", mode)
	}
}
