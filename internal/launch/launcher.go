// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hatk-cli/pkg/hatkfile"

	"github.com/charmbracelet/log"
)

// shutdownTimeout bounds graceful session shutdown.
const shutdownTimeout = 10 * time.Second

// Sentinel errors callers can match to tell launch failure stages apart.
var (
	// ErrDependencies marks a dependency validation failure.
	ErrDependencies = errors.New("dependencies not satisfied")
	// ErrSetupHook marks a setup hook that exited non-zero.
	ErrSetupHook = errors.New("setup hook failed")
	// ErrSessionStart marks a session server that could not start.
	ErrSessionStart = errors.New("session start failed")
)

// Session is the serving half of a launch: started after the manifest's
// dependencies and hooks are satisfied, stopped on signal or failure.
type Session interface {
	// Start binds the listener and begins serving. It does not block.
	Start(ctx context.Context) error
	// Stop shuts the session down gracefully.
	Stop(ctx context.Context) error
	// Err yields the first serving failure.
	Err() <-chan error
	// URL returns the address the session serves at, once started.
	URL() string
}

// Options configures a launch.
type Options struct {
	// Manifest is the parsed toolkit manifest.
	Manifest *hatkfile.Hatkfile
	// DefaultRuntime applies to hooks and commands that don't pick one.
	DefaultRuntime hatkfile.RuntimeMode
	// Session is the server to run once preparation succeeds.
	Session Session
	// Logger receives launch progress.
	Logger *log.Logger
}

// Run performs a full launch: dependency validation, setup hooks, then
// the session server. It blocks until the context is canceled or the
// session fails, and shuts the session down before returning.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	logger.Debug("validating dependencies", "manifest", opts.Manifest.FilePath)
	if failures := CheckDependencies(opts.Manifest); len(failures) > 0 {
		return errors.Join(ErrDependencies, DependencyError(failures))
	}

	if n := len(opts.Manifest.Setup); n > 0 {
		logger.Info("running setup hooks", "count", n)
		if err := RunSetupHooks(ctx, opts.Manifest, opts.DefaultRuntime, logger); err != nil {
			return errors.Join(ErrSetupHook, err)
		}
	}

	if err := opts.Session.Start(ctx); err != nil {
		return errors.Join(ErrSessionStart, err)
	}
	logger.Info("session ready", "url", opts.Session.URL(), "toolkit", opts.Manifest.Toolkit)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-opts.Session.Err():
		if err != nil {
			runErr = fmt.Errorf("session failed: %w", err)
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := opts.Session.Stop(stopCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop session: %w", err)
	}

	return runErr
}
