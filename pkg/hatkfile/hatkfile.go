// SPDX-License-Identifier: MPL-2.0

package hatkfile

import (
	"fmt"
	"strings"

	"hatk-cli/pkg/types"
)

// FileName is the base name for toolkit manifest files.
const FileName = "hatkfile"

// Module kinds understood by the session server.
const (
	KindSummary ModuleKind = "summary"
	KindTables  ModuleKind = "tables"
	KindGraphs  ModuleKind = "graphs"
)

// Runtime modes for setup hooks and helper commands.
const (
	RuntimeNative  RuntimeMode = "native"
	RuntimeVirtual RuntimeMode = "virtual"
)

type (
	// ModuleKind selects which analysis page a module entry opens.
	ModuleKind string

	// RuntimeMode selects how a script is executed.
	RuntimeMode string

	// Module is one card on the session hub page.
	Module struct {
		// Name identifies the module (unique within the manifest).
		Name string `json:"name" toml:"name"`
		// Kind selects the analysis page backing the module.
		Kind ModuleKind `json:"kind" toml:"kind"`
		// Description is shown on the hub card.
		Description string `json:"description,omitempty" toml:"description,omitempty"`
		// Icon is an optional glyph shown next to the name.
		Icon string `json:"icon,omitempty" toml:"icon,omitempty"`
	}

	// Command is a manifest-declared helper command (converters and other
	// external tooling run via `hatk run`).
	Command struct {
		Name        string      `json:"name" toml:"name"`
		Description string      `json:"description,omitempty" toml:"description,omitempty"`
		// Script is the shell script to execute.
		Script string `json:"script" toml:"script"`
		// Runtime selects native or virtual execution (default native).
		Runtime RuntimeMode `json:"runtime,omitempty" toml:"runtime,omitempty"`
		// Shell overrides the shell for native execution.
		Shell string `json:"shell,omitempty" toml:"shell,omitempty"`
		// WorkDir overrides the working directory.
		WorkDir string `json:"workdir,omitempty" toml:"workdir,omitempty"`
		// Interactive requests PTY attachment when supported.
		Interactive bool `json:"interactive,omitempty" toml:"interactive,omitempty"`
		// Env adds environment variables for this command only.
		Env map[string]string `json:"env,omitempty" toml:"env,omitempty"`
	}

	// Hook is a setup script the launcher runs before serving.
	Hook struct {
		Name    string      `json:"name" toml:"name"`
		Script  string      `json:"script" toml:"script"`
		Runtime RuntimeMode `json:"runtime,omitempty" toml:"runtime,omitempty"`
	}

	// ServerConfig carries session server settings from the manifest.
	ServerConfig struct {
		// Addr is the bind address (default 127.0.0.1).
		Addr string `json:"addr,omitempty" toml:"addr,omitempty"`
		// Port is the listen port; 0 auto-selects.
		Port types.ListenPort `json:"port,omitempty" toml:"port,omitempty"`
		// ReportsDir is scanned for report files.
		ReportsDir string `json:"reports_dir,omitempty" toml:"reports_dir,omitempty"`
	}

	// Hatkfile is the parsed toolkit manifest.
	Hatkfile struct {
		// Toolkit is the display name of the toolkit.
		Toolkit     string `json:"toolkit" toml:"toolkit"`
		Description string `json:"description,omitempty" toml:"description,omitempty"`
		Version     string `json:"version,omitempty" toml:"version,omitempty"`
		// DefaultShell overrides the shell for native runtime scripts.
		DefaultShell string `json:"default_shell,omitempty" toml:"default_shell,omitempty"`
		// WorkDir is the default working directory for commands and hooks,
		// absolute or relative to the manifest location.
		WorkDir string `json:"workdir,omitempty" toml:"workdir,omitempty"`
		// Entry names the module the session opens first. Defaults to the
		// first module.
		Entry string `json:"entry,omitempty" toml:"entry,omitempty"`
		// DependsOn declares dependencies the launcher must satisfy.
		DependsOn *DependsOn `json:"depends_on,omitempty" toml:"depends_on,omitempty"`
		// Modules defines the hub page entries.
		Modules []Module `json:"modules" toml:"modules"`
		// Commands defines helper commands.
		Commands []Command `json:"commands,omitempty" toml:"commands,omitempty"`
		// Setup hooks run before the session server starts.
		Setup []Hook `json:"setup,omitempty" toml:"setup,omitempty"`
		// Server carries session server settings.
		Server *ServerConfig `json:"server,omitempty" toml:"server,omitempty"`

		// FilePath is where the manifest was loaded from (not in CUE).
		FilePath string `json:"-" toml:"-"`
	}
)

// IsValid reports whether the module kind is one of the known kinds.
func (k ModuleKind) IsValid() bool {
	switch k {
	case KindSummary, KindTables, KindGraphs:
		return true
	}
	return false
}

// IsValid reports whether the runtime mode is known. The empty string is
// valid and means "default".
func (m RuntimeMode) IsValid() bool {
	switch m {
	case "", RuntimeNative, RuntimeVirtual:
		return true
	}
	return false
}

// FindModule returns the module with the given name, or nil.
func (h *Hatkfile) FindModule(name string) *Module {
	for i := range h.Modules {
		if h.Modules[i].Name == name {
			return &h.Modules[i]
		}
	}
	return nil
}

// FindCommand returns the helper command with the given name, or nil.
func (h *Hatkfile) FindCommand(name string) *Command {
	for i := range h.Commands {
		if h.Commands[i].Name == name {
			return &h.Commands[i]
		}
	}
	return nil
}

// EntryModule resolves the entry module. Returns the named module when Entry
// is set, otherwise the first module.
func (h *Hatkfile) EntryModule() (*Module, error) {
	if h.Entry != "" {
		m := h.FindModule(h.Entry)
		if m == nil {
			return nil, fmt.Errorf("entry module %q is not declared in modules", h.Entry)
		}
		return m, nil
	}
	if len(h.Modules) == 0 {
		return nil, fmt.Errorf("manifest declares no modules")
	}
	return &h.Modules[0], nil
}

// validate applies the Go-level checks that the CUE schema cannot express
// (cross-field references and duplicate detection). TOML manifests rely on
// this entirely.
func (h *Hatkfile) validate() error {
	if strings.TrimSpace(h.Toolkit) == "" {
		return fmt.Errorf("toolkit name must not be empty")
	}
	if len(h.Modules) == 0 {
		return fmt.Errorf("manifest must declare at least one module")
	}

	seen := make(map[string]bool, len(h.Modules))
	for i := range h.Modules {
		m := &h.Modules[i]
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("modules[%d]: name must not be empty", i)
		}
		if !m.Kind.IsValid() {
			return fmt.Errorf("module %q: unknown kind %q (want summary, tables or graphs)", m.Name, m.Kind)
		}
		if seen[m.Name] {
			return fmt.Errorf("module %q declared more than once", m.Name)
		}
		seen[m.Name] = true
	}

	if h.Entry != "" && h.FindModule(h.Entry) == nil {
		return fmt.Errorf("entry module %q is not declared in modules", h.Entry)
	}

	seenCmd := make(map[string]bool, len(h.Commands))
	for i := range h.Commands {
		c := &h.Commands[i]
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("commands[%d]: name must not be empty", i)
		}
		if strings.TrimSpace(c.Script) == "" {
			return fmt.Errorf("command %q: script must not be empty", c.Name)
		}
		if !c.Runtime.IsValid() {
			return fmt.Errorf("command %q: unknown runtime %q (want native or virtual)", c.Name, c.Runtime)
		}
		if seenCmd[c.Name] {
			return fmt.Errorf("command %q declared more than once", c.Name)
		}
		seenCmd[c.Name] = true
	}

	for i := range h.Setup {
		s := &h.Setup[i]
		if strings.TrimSpace(s.Script) == "" {
			return fmt.Errorf("setup[%d]: script must not be empty", i)
		}
		if !s.Runtime.IsValid() {
			return fmt.Errorf("setup hook %q: unknown runtime %q", s.Name, s.Runtime)
		}
	}

	if h.Server != nil {
		if err := h.Server.Port.Validate(); err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}

	if h.DependsOn != nil {
		if err := h.DependsOn.validate(); err != nil {
			return err
		}
	}

	return nil
}
