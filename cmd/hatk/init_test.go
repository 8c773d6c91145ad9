// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"hatk-cli/pkg/hatkfile"
)

// The scaffold must always satisfy the manifest schema it advertises.
func TestStarterHatkfileParses(t *testing.T) {
	t.Parallel()

	h, err := hatkfile.ParseBytes([]byte(starterHatkfile), "hatkfile.cue")
	if err != nil {
		t.Fatalf("starter hatkfile does not parse: %v", err)
	}

	if h.Toolkit != "Harmonic Analysis Toolkit" {
		t.Errorf("Toolkit = %q", h.Toolkit)
	}
	if len(h.Modules) != 3 {
		t.Fatalf("modules = %d, want 3", len(h.Modules))
	}
	kinds := map[hatkfile.ModuleKind]bool{}
	for _, m := range h.Modules {
		kinds[m.Kind] = true
	}
	for _, kind := range []hatkfile.ModuleKind{hatkfile.KindSummary, hatkfile.KindTables, hatkfile.KindGraphs} {
		if !kinds[kind] {
			t.Errorf("starter manifest missing a %q module", kind)
		}
	}

	entry, err := h.EntryModule()
	if err != nil {
		t.Fatalf("EntryModule: %v", err)
	}
	if entry.Kind != hatkfile.KindSummary {
		t.Errorf("entry module kind = %q, want summary", entry.Kind)
	}

	if len(h.Commands) == 0 {
		t.Error("starter manifest declares no helper commands")
	}
	if h.Server == nil || h.Server.ReportsDir == "" {
		t.Error("starter manifest has no server block")
	}
}
