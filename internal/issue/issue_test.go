// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file")
	err := NewContext().
		WithOperation("load manifest").
		WithResource("./hatkfile.cue").
		Wrap(cause).
		Build()

	want := "failed to load manifest: ./hatkfile.cue: no such file"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := NewContext().
		WithOperation("start session server").
		WithSuggestion("Check whether the port is in use").
		WithSuggestion("Try --addr 127.0.0.1:0").
		Wrap(inner).
		Build()

	concise := err.Format(false)
	if !strings.Contains(concise, "• Check whether the port is in use") {
		t.Errorf("Format(false) missing suggestion:\n%s", concise)
	}
	if strings.Contains(concise, "Error chain") {
		t.Errorf("Format(false) should not include the error chain:\n%s", concise)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. connection refused") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}

func TestContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	if Wrap(nil, "anything") != nil {
		t.Error("Wrap(nil) != nil")
	}
	err := Wrap(errors.New("boom"), "run setup hook")
	if got := err.Error(); got != "failed to run setup hook: boom" {
		t.Errorf("Wrap().Error() = %q", got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, id := range KnownIds() {
		iss := Lookup(id)
		if iss == nil {
			t.Fatalf("Lookup(%d) = nil for known id", id)
		}
		if iss.Id() != id {
			t.Errorf("Lookup(%d).Id() = %d", id, iss.Id())
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty body", id)
		}
	}

	if Lookup(Id(9999)) != nil {
		t.Error("Lookup(unknown) != nil")
	}
}

func TestEveryIdHasPage(t *testing.T) {
	t.Parallel()

	declared := []Id{
		ManifestNotFoundId,
		ManifestParseErrorId,
		DependenciesNotSatisfiedId,
		SetupHookFailedId,
		SessionStartFailedId,
		UnsupportedReportId,
		CommandNotFoundId,
	}
	for _, id := range declared {
		if Lookup(id) == nil {
			t.Errorf("id %d has no catalog page", id)
		}
	}
	if got := len(KnownIds()); got != len(declared) {
		t.Errorf("catalog has %d pages, %d ids declared", got, len(declared))
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	orig := render
	defer func() { render = orig }()
	render = func(in, _ string) (string, error) { return in, nil }

	out, err := Lookup(ManifestNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "hatk init") {
		t.Errorf("Render() output missing scaffold hint:\n%s", out)
	}
}
