// SPDX-License-Identifier: MPL-2.0

package report

import "testing"

const eventSummaryPage = `Event Summary
Type Phase Start Time Duration Deviation (%)
Swell V1N 14-05-2025 10:23:45 AM 00:00:02 12.5
Dip V2N 15-05-2025 02:11:08 PM 00:00:01 18.2
Interruption V3N 16-05-2025 23:59:59 00:01:12 100
`

func TestExtractEvents(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "7 Days report.txt",
		Pages: []string{"meta", "tables", eventSummaryPage},
	}

	events := ExtractEvents(doc)
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}

	want := Event{
		Type:      "Swell",
		Phase:     "V1N",
		StartTime: "14-05-2025 10:23:45 AM",
		Duration:  "00:00:02",
		Deviation: "12.5",
	}
	if events[0] != want {
		t.Errorf("events[0] = %+v, want %+v", events[0], want)
	}

	// A timestamp without an AM/PM marker still parses.
	if events[2].StartTime != "16-05-2025 23:59:59" {
		t.Errorf("events[2].StartTime = %q", events[2].StartTime)
	}
}

func TestExtractEventsSecondLastPage(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "report.txt",
		Pages: []string{"meta", eventSummaryPage, "trailing appendix"},
	}

	events := ExtractEvents(doc)
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
}

func TestExtractEventsNotOnEarlierPages(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "report.txt",
		Pages: []string{eventSummaryPage, "page", "page", "no summary here"},
	}

	if events := ExtractEvents(doc); events != nil {
		t.Errorf("events = %v, want nil", events)
	}
}

func TestExtractEventsSinglePage(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "report.txt",
		Pages: []string{eventSummaryPage},
	}

	if events := ExtractEvents(doc); len(events) != 3 {
		t.Errorf("events = %d, want 3", len(events))
	}
}

func TestCountEvents(t *testing.T) {
	t.Parallel()

	events := []Event{
		{Type: "Swell"},
		{Type: "swell"},
		{Type: "Dip"},
	}
	if got := CountEvents(events, "Swell"); got != 2 {
		t.Errorf("CountEvents(Swell) = %d, want 2", got)
	}
	if got := CountEvents(events, "Transient"); got != 0 {
		t.Errorf("CountEvents(Transient) = %d, want 0", got)
	}
}
