// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"hatk-cli/internal/issue"
	"hatk-cli/pkg/hatkfile"

	"github.com/charmbracelet/log"
)

// RunSetupHooks executes the manifest's setup hooks sequentially. The
// first failing hook aborts the launch; its captured output rides along
// in the error.
func RunSetupHooks(ctx context.Context, h *hatkfile.Hatkfile, defaultRuntime hatkfile.RuntimeMode, logger *log.Logger) error {
	for _, hook := range h.Setup {
		if err := runHook(ctx, h, hook, defaultRuntime, logger); err != nil {
			return err
		}
	}
	return nil
}

func runHook(ctx context.Context, h *hatkfile.Hatkfile, hook hatkfile.Hook, defaultRuntime hatkfile.RuntimeMode, logger *log.Logger) error {
	rt, err := ForMode(hook.Runtime, defaultRuntime)
	if err != nil {
		return fmt.Errorf("setup hook %q: %w", hook.Name, err)
	}

	logger.Debug("running setup hook", "hook", hook.Name, "runtime", rt.Name())

	var output bytes.Buffer
	result := rt.Execute(&ExecContext{
		Context: ctx,
		Script:  hook.Script,
		Shell:   h.DefaultShell,
		WorkDir: hookWorkDir(h),
		Stdout:  &output,
		Stderr:  &output,
	})

	if result.Failed() {
		cause := result.Error
		if cause == nil {
			cause = fmt.Errorf("exit code %d", result.ExitCode)
		}
		ctx := issue.NewContext().
			WithOperation(fmt.Sprintf("run setup hook %q", hook.Name)).
			WithResource(h.FilePath).
			WithSuggestion("Fix the hook script or remove it from the setup block")
		if out := output.String(); out != "" {
			cause = fmt.Errorf("%w\nhook output:\n%s", cause, out)
		}
		return ctx.Wrap(cause).BuildError()
	}

	logger.Debug("setup hook finished", "hook", hook.Name)
	return nil
}

// hookWorkDir resolves the manifest's working directory for hooks and
// commands: workdir relative paths resolve against the manifest location,
// defaulting to the manifest's directory.
func hookWorkDir(h *hatkfile.Hatkfile) string {
	base := filepath.Dir(h.FilePath)
	if h.WorkDir == "" {
		return base
	}
	if filepath.IsAbs(h.WorkDir) {
		return h.WorkDir
	}
	return filepath.Join(base, h.WorkDir)
}
