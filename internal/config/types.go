// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RuntimeNative runs scripts in the host system shell.
	// Defined locally to avoid coupling config to pkg/hatkfile.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs scripts in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidConfigRuntimeMode is returned when a RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLimits is returned when a compliance limit override is not positive.
	ErrInvalidLimits = errors.New("invalid compliance limits")
)

type (
	// RuntimeMode specifies the execution runtime for setup hooks and
	// helper commands. The launcher casts to hatkfile.RuntimeMode at the
	// boundary.
	RuntimeMode string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// ServerConfig holds session server defaults. The manifest's server
	// block takes precedence over these.
	ServerConfig struct {
		// Addr is the bind address for the session server.
		Addr string `mapstructure:"addr"`
		// Port is the listen port; 0 auto-selects.
		Port int `mapstructure:"port"`
	}

	// UIConfig holds terminal presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		Verbose     bool        `mapstructure:"verbose"`
	}

	// LimitsConfig overrides the daily compliance limits. Values are
	// percentages; zero means "use the built-in limit".
	LimitsConfig struct {
		VoltageDaily float64 `mapstructure:"voltage_daily"`
		CurrentDaily float64 `mapstructure:"current_daily"`
	}

	// Config is the application configuration.
	Config struct {
		// ReportsDir is scanned for report files when no manifest
		// overrides it.
		ReportsDir string `mapstructure:"reports_dir"`
		// DefaultRuntime selects how scripts run when the manifest does
		// not say.
		DefaultRuntime RuntimeMode  `mapstructure:"default_runtime"`
		Server         ServerConfig `mapstructure:"server"`
		UI             UIConfig     `mapstructure:"ui"`
		Limits         LimitsConfig `mapstructure:"limits"`
	}
)

// IsValid reports whether the runtime mode is recognized.
func (m RuntimeMode) IsValid() bool {
	return m == RuntimeNative || m == RuntimeVirtual
}

// IsValid reports whether the color scheme is recognized.
func (s ColorScheme) IsValid() bool {
	return s == ColorSchemeAuto || s == ColorSchemeDark || s == ColorSchemeLight
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ReportsDir:     "PDFs",
		DefaultRuntime: RuntimeNative,
		Server: ServerConfig{
			Addr: "127.0.0.1",
			Port: 8501,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate applies the checks CUE cannot express on the merged config.
func (c *Config) Validate() error {
	if !c.DefaultRuntime.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidConfigRuntimeMode, c.DefaultRuntime)
	}
	if !c.UI.ColorScheme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, c.UI.ColorScheme)
	}
	if c.Limits.VoltageDaily < 0 || c.Limits.CurrentDaily < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidLimits)
	}
	if strings.TrimSpace(c.ReportsDir) == "" {
		return fmt.Errorf("reports_dir must not be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// GenerateCUE renders the configuration as a CUE file body.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// hatk configuration file\n\n")
	fmt.Fprintf(&sb, "reports_dir:     %q\n", cfg.ReportsDir)
	fmt.Fprintf(&sb, "default_runtime: %q\n", cfg.DefaultRuntime)

	sb.WriteString("\nserver: {\n")
	fmt.Fprintf(&sb, "\taddr: %q\n", cfg.Server.Addr)
	fmt.Fprintf(&sb, "\tport: %d\n", cfg.Server.Port)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %t\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	if cfg.Limits.VoltageDaily > 0 || cfg.Limits.CurrentDaily > 0 {
		sb.WriteString("\nlimits: {\n")
		if cfg.Limits.VoltageDaily > 0 {
			fmt.Fprintf(&sb, "\tvoltage_daily: %g\n", cfg.Limits.VoltageDaily)
		}
		if cfg.Limits.CurrentDaily > 0 {
			fmt.Fprintf(&sb, "\tcurrent_daily: %g\n", cfg.Limits.CurrentDaily)
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}
