// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"hatk-cli/internal/issue"
	"hatk-cli/pkg/hatkfile"
)

// DependencyFailure describes one unsatisfied manifest dependency.
type DependencyFailure struct {
	// Kind is "tool", "file", or "env".
	Kind string
	// Subject is what was checked (binary names, path, variable name).
	Subject string
	// Reason says why the check failed.
	Reason string
}

func (f DependencyFailure) String() string {
	return fmt.Sprintf("%s %s: %s", f.Kind, f.Subject, f.Reason)
}

// CheckDependencies validates every dependency the manifest declares.
// All checks run; failures are collected rather than short-circuited so
// the user sees the complete picture at once.
func CheckDependencies(h *hatkfile.Hatkfile) []DependencyFailure {
	if h.DependsOn == nil {
		return nil
	}

	var failures []DependencyFailure

	for _, tool := range h.DependsOn.Tools {
		if !anyToolInPath(tool.Alternatives) {
			failures = append(failures, DependencyFailure{
				Kind:    "tool",
				Subject: strings.Join(tool.Alternatives, " | "),
				Reason:  "no alternative found in PATH",
			})
		}
	}

	manifestDir := filepath.Dir(h.FilePath)
	for _, file := range h.DependsOn.Files {
		path := file.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(manifestDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			failures = append(failures, DependencyFailure{
				Kind:    "file",
				Subject: file.Path,
				Reason:  "does not exist",
			})
		}
	}

	for _, ev := range h.DependsOn.EnvVars {
		value, set := os.LookupEnv(ev.Name)
		if !set {
			failures = append(failures, DependencyFailure{
				Kind:    "env",
				Subject: ev.Name,
				Reason:  "not set",
			})
			continue
		}
		if ev.Pattern == "" {
			continue
		}
		// The pattern was validated at parse time.
		re, err := regexp.Compile(ev.Pattern)
		if err != nil || !re.MatchString(value) {
			failures = append(failures, DependencyFailure{
				Kind:    "env",
				Subject: ev.Name,
				Reason:  fmt.Sprintf("value does not match pattern %q", ev.Pattern),
			})
		}
	}

	return failures
}

func anyToolInPath(alternatives []string) bool {
	for _, name := range alternatives {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// DependencyError builds the fatal error for unsatisfied dependencies.
func DependencyError(failures []DependencyFailure) error {
	if len(failures) == 0 {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d unsatisfied dependencies:", len(failures))
	for _, f := range failures {
		sb.WriteString("\n  - ")
		sb.WriteString(f.String())
	}

	ctx := issue.NewContext().
		WithOperation("validate dependencies").
		WithSuggestion("Install the missing tools or adjust the manifest's depends_on block").
		WithSuggestion("Run 'hatk check' to re-verify after fixing")
	return ctx.Wrap(fmt.Errorf("%s", sb.String())).BuildError()
}
