// SPDX-License-Identifier: MPL-2.0

// Package session serves the localhost analysis hub: module pages for
// weekly summaries, harmonic tables and graph extraction, backed by the
// reports directory and per-request uploads.
package session

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"hatk-cli/internal/compliance"
	"hatk-cli/pkg/hatkfile"

	"github.com/charmbracelet/log"
)

const (
	// defaultAddr is the bind host when the manifest does not set one.
	// The session is a local tool and never listens on public interfaces
	// by default.
	defaultAddr = "127.0.0.1"

	// maxUploadBytes bounds the size of uploaded report files.
	maxUploadBytes = 64 << 20

	readTimeout  = 30 * time.Second
	writeTimeout = 2 * time.Minute
	idleTimeout  = 60 * time.Second
)

// Options configures a session server.
type Options struct {
	// Manifest provides the toolkit identity and module list.
	Manifest *hatkfile.Hatkfile
	// Addr is the bind host; empty means localhost only.
	Addr string
	// Port is the listen port; 0 auto-selects a free port.
	Port int
	// ReportsDir is scanned for report files.
	ReportsDir string
	// Limits are the compliance limits applied to analyses.
	Limits compliance.Limits
	// Logger receives request and lifecycle logs.
	Logger *log.Logger
}

// Server is the localhost HTTP server behind an analysis session.
// An instance is single-use: once stopped or failed, create a new one.
type Server struct {
	*lifecycle

	opts       Options
	logger     *log.Logger
	httpServer *http.Server
	listener   net.Listener

	// workDir holds uploads and extracted graph images for the lifetime
	// of the session.
	workDir string

	// uploadMu guards uploads, the base-name index of files received via
	// the upload forms.
	uploadMu sync.Mutex
	uploads  map[string]string
}

// New creates a session server. The listener is not bound until Start.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}
	if opts.Limits == (compliance.Limits{}) {
		opts.Limits = compliance.DefaultLimits()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		lifecycle: newLifecycle(),
		opts:      opts,
		logger:    logger,
		uploads:   make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHub)
	mux.HandleFunc("/summary", s.handleSummary)
	mux.HandleFunc("/tables", s.handleTables)
	mux.HandleFunc("/graphs", s.handleGraphs)
	mux.HandleFunc("/api/reports", s.handleAPIReports)
	mux.HandleFunc("/download/tables.xlsx", s.handleDownloadTables)
	mux.HandleFunc("/download/violations.csv", s.handleDownloadViolations)
	mux.HandleFunc("/download/graphs.zip", s.handleDownloadGraphs)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s
}

// Start binds the listener and begins serving. It does not block; serving
// failures arrive on Err().
func (s *Server) Start(ctx context.Context) error {
	if err := s.toStarting(ctx); err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", "hatk-session-*")
	if err != nil {
		err = fmt.Errorf("failed to create session work dir: %w", err)
		s.toFailed(err)
		return err
	}
	s.workDir = workDir

	listener, err := net.Listen("tcp", net.JoinHostPort(s.opts.Addr, fmt.Sprintf("%d", s.opts.Port)))
	if err != nil {
		err = fmt.Errorf("failed to bind %s:%d: %w", s.opts.Addr, s.opts.Port, err)
		s.toFailed(err)
		return err
	}
	s.listener = listener
	s.toRunning()

	s.logger.Debug("session listening", "addr", listener.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.toFailed(fmt.Errorf("session server: %w", err))
		}
	}()

	return nil
}

// Stop shuts the server down gracefully, bounded by the given context.
func (s *Server) Stop(ctx context.Context) error {
	if !s.toStopping() {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)
	s.wg.Wait()
	s.toStopped()

	if s.workDir != "" {
		if rmErr := os.RemoveAll(s.workDir); rmErr != nil {
			s.logger.Warn("failed to remove session work dir", "dir", s.workDir, "error", rmErr)
		}
	}

	return err
}

// Addr returns the bound listen address, or empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the session's base URL, or empty before Start.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	return "http://" + addr
}

// rememberUpload records an uploaded file so later downloads can resolve
// it by base name the same way scanned reports resolve.
func (s *Server) rememberUpload(name, path string) {
	s.uploadMu.Lock()
	defer s.uploadMu.Unlock()
	s.uploads[name] = path
}

func (s *Server) uploadPath(name string) (string, bool) {
	s.uploadMu.Lock()
	defer s.uploadMu.Unlock()
	path, ok := s.uploads[name]
	return path, ok
}

// saveUpload writes an uploaded file into the session work dir. The
// client-supplied name is flattened to its base to keep writes inside
// the work dir.
func (s *Server) saveUpload(name string, data []byte) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	dir := filepath.Join(s.workDir, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	s.rememberUpload(base, path)
	return path, nil
}
