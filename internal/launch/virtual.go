// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes scripts with the embedded POSIX shell
// interpreter. It needs no system shell, so scripts behave the same on
// every host.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return "virtual"
}

// Available reports whether the runtime can run; the interpreter is
// built in, so it always can.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Execute runs a script in the embedded interpreter.
func (r *VirtualRuntime) Execute(ec *ExecContext) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(ec.Script), "script")
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("script syntax error: %w", err)}
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(append(os.Environ(), envToSlice(ec.Env)...)...)),
		interp.StdIO(ec.Stdin, ec.Stdout, ec.Stderr),
	}
	if ec.WorkDir != "" {
		opts = append(opts, interp.Dir(ec.WorkDir))
	}
	if len(ec.Args) > 0 {
		opts = append(opts, interp.Params(ec.Args...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(ec.Context, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &Result{ExitCode: int(status)}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("script execution failed: %w", err)}
	}
	return &Result{ExitCode: 0}
}
