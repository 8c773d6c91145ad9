// SPDX-License-Identifier: MPL-2.0

package hatkfile

import (
	"fmt"
	"regexp"
	"strings"
)

type (
	// ToolDependency is an executable expected in PATH. Alternatives have
	// OR semantics: any match satisfies the dependency.
	ToolDependency struct {
		Alternatives []string `json:"alternatives" toml:"alternatives"`
	}

	// FileDependency is a file or directory that must exist. Relative
	// paths resolve against the manifest location.
	FileDependency struct {
		Path string `json:"path" toml:"path"`
	}

	// EnvVarCheck requires an environment variable to be set, optionally
	// matching a regex pattern.
	EnvVarCheck struct {
		Name string `json:"name" toml:"name"`
		// Pattern, when set, must match the variable's value.
		Pattern string `json:"pattern,omitempty" toml:"pattern,omitempty"`
	}

	// DependsOn declares everything the launcher must verify before the
	// session starts. All checks are collected; any failure is fatal.
	DependsOn struct {
		Tools   []ToolDependency `json:"tools,omitempty" toml:"tools,omitempty"`
		Files   []FileDependency `json:"files,omitempty" toml:"files,omitempty"`
		EnvVars []EnvVarCheck    `json:"env_vars,omitempty" toml:"env_vars,omitempty"`
	}
)

func (d *DependsOn) validate() error {
	for i, tool := range d.Tools {
		if len(tool.Alternatives) == 0 {
			return fmt.Errorf("depends_on.tools[%d]: alternatives must not be empty", i)
		}
		for _, name := range tool.Alternatives {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("depends_on.tools[%d]: empty binary name", i)
			}
			if strings.ContainsAny(name, `/\`) {
				return fmt.Errorf("depends_on.tools[%d]: binary name %q must not contain path separators", i, name)
			}
		}
	}

	for i, file := range d.Files {
		if strings.TrimSpace(file.Path) == "" {
			return fmt.Errorf("depends_on.files[%d]: path must not be empty", i)
		}
	}

	for i, ev := range d.EnvVars {
		if strings.TrimSpace(ev.Name) == "" {
			return fmt.Errorf("depends_on.env_vars[%d]: name must not be empty", i)
		}
		if ev.Pattern != "" {
			if _, err := regexp.Compile(ev.Pattern); err != nil {
				return fmt.Errorf("depends_on.env_vars[%d] (%s): invalid pattern: %w", i, ev.Name, err)
			}
		}
	}

	return nil
}
