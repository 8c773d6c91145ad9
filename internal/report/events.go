// SPDX-License-Identifier: MPL-2.0

package report

import (
	"regexp"
	"strings"
)

// Event is one row of a report's event summary: a voltage disturbance with
// its phase, onset, duration, and deviation from nominal.
type Event struct {
	Type      string
	Phase     string
	StartTime string
	Duration  string
	// Deviation is the percentage deviation as printed.
	Deviation string
}

// eventRowRe matches an event row keyed on the known disturbance types.
// The start time carries embedded spaces, so parsing splits on the
// timestamp shape rather than plain whitespace.
var eventRowRe = regexp.MustCompile(
	`(?i)\b(Swell|Dip|Interruption|Transient)\b\s+(\S+)\s+` +
		`(\d{2}-\d{2}-\d{4}\s+\d{2}:\d{2}:\d{2}(?:\s*[AP]M)?)\s+` +
		`(\S+)\s+([\d.]+%?)`)

// ExtractEvents pulls the event summary from the last or second-last page.
// The summary always sits at the end of a report; earlier pages are never
// scanned to avoid matching disturbance words in prose.
func ExtractEvents(doc *Document) []Event {
	var candidates []string
	switch n := len(doc.Pages); {
	case n >= 2:
		candidates = []string{doc.Pages[n-1], doc.Pages[n-2]}
	case n == 1:
		candidates = []string{doc.Pages[0]}
	}

	for _, page := range candidates {
		if !strings.Contains(page, "Event Summary") {
			continue
		}
		return parseEventRows(page)
	}
	return nil
}

func parseEventRows(page string) []Event {
	var events []Event
	for _, m := range eventRowRe.FindAllStringSubmatch(page, -1) {
		eventType := strings.TrimSpace(m[1])
		// Guard against the column header row.
		if eventType == "" || strings.EqualFold(eventType, "Type") {
			continue
		}
		events = append(events, Event{
			Type:      eventType,
			Phase:     strings.TrimSpace(m[2]),
			StartTime: strings.TrimSpace(m[3]),
			Duration:  strings.TrimSpace(m[4]),
			Deviation: strings.TrimSpace(m[5]),
		})
	}
	return events
}

// CountEvents tallies events by type, case-insensitively.
func CountEvents(events []Event, eventType string) int {
	count := 0
	for _, e := range events {
		if strings.EqualFold(e.Type, eventType) {
			count++
		}
	}
	return count
}
