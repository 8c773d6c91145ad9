// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"hatk-cli/internal/compliance"
	"hatk-cli/internal/issue"
	"hatk-cli/internal/launch"
	"hatk-cli/internal/session"
	"hatk-cli/pkg/hatkfile"

	"github.com/spf13/cobra"
)

var (
	serveAddr       string
	serveReportsDir string
	serveSkipChecks bool

	// serveCmd starts the analysis session: dependency checks, setup
	// hooks, then the localhost server.
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the analysis session server",
		Long: `Start the analysis session server.

The launcher validates the manifest's dependencies, runs its setup hooks,
then serves the analysis hub on localhost until interrupted.`,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the toolkit manifest")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address as host:port (port 0 auto-selects)")
	serveCmd.Flags().StringVar(&serveReportsDir, "reports-dir", "", "directory scanned for report files")
	serveCmd.Flags().BoolVar(&serveSkipChecks, "skip-checks", false, "skip manifest dependency validation")
}

func runServe(cmd *cobra.Command, _ []string) error {
	h, err := loadManifest()
	if err != nil {
		return err
	}
	cfg := currentConfig()
	logger := newLogger("serve")

	host, port, err := resolveListenAddr(h)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	limits := compliance.DefaultLimits().
		WithOverrides(cfg.Limits.VoltageDaily, cfg.Limits.CurrentDaily)

	sess := session.New(session.Options{
		Manifest:   h,
		Addr:       host,
		Port:       port,
		ReportsDir: resolveReportsDir(h),
		Limits:     limits,
		Logger:     logger,
	})

	if serveSkipChecks && h.DependsOn != nil {
		logger.Warn("skipping dependency validation (--skip-checks)")
		trimmed := *h
		trimmed.DependsOn = nil
		h = &trimmed
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = launch.Run(ctx, launch.Options{
		Manifest:       h,
		DefaultRuntime: hatkfile.RuntimeMode(cfg.DefaultRuntime),
		Session:        sess,
		Logger:         logger,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, launch.ErrDependencies):
		renderIssue(issue.DependenciesNotSatisfiedId)
		return &ExitError{Code: 1, Err: err}
	case errors.Is(err, launch.ErrSetupHook):
		renderIssue(issue.SetupHookFailedId)
		return &ExitError{Code: 1, Err: err}
	case errors.Is(err, launch.ErrSessionStart):
		renderIssue(issue.SessionStartFailedId)
		return &ExitError{Code: 1, Err: err}
	default:
		return &ExitError{Code: 1, Err: err}
	}
}

// resolveListenAddr merges the --addr flag with the manifest's server
// block. The flag takes "host:port" or a bare host.
func resolveListenAddr(h *hatkfile.Hatkfile) (string, int, error) {
	host := ""
	port := 0
	if h.Server != nil {
		host = h.Server.Addr
		port = int(h.Server.Port)
	}
	if host == "" {
		host = currentConfig().Server.Addr
	}
	if port == 0 {
		port = currentConfig().Server.Port
	}

	if serveAddr != "" {
		flagHost, flagPort, err := net.SplitHostPort(serveAddr)
		if err != nil {
			// A bare host is accepted too.
			host = serveAddr
			return host, port, nil
		}
		p, err := strconv.Atoi(flagPort)
		if err != nil {
			return "", 0, fmt.Errorf("invalid port in --addr %q: %w", serveAddr, err)
		}
		if flagHost != "" {
			host = flagHost
		}
		port = p
	}
	return host, port, nil
}

// resolveReportsDir picks the reports directory: --reports-dir flag,
// manifest server block, configuration, then the working directory.
func resolveReportsDir(h *hatkfile.Hatkfile) string {
	if serveReportsDir != "" {
		return serveReportsDir
	}
	if h.Server != nil && h.Server.ReportsDir != "" {
		return h.Server.ReportsDir
	}
	if dir := currentConfig().ReportsDir; dir != "" {
		return dir
	}
	return "."
}
