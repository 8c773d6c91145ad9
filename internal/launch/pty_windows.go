// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import (
	"fmt"
	"os/exec"
)

// ptySupported reports whether interactive PTY attachment works here.
// Windows callers fall back to plain pipes.
func ptySupported() bool {
	return false
}

func runWithPty(_ *exec.Cmd) (int, error) {
	return 1, fmt.Errorf("pty attachment is not supported on windows")
}
