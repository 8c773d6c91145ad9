// SPDX-License-Identifier: MPL-2.0

package report

import (
	"testing"
	"time"
)

const firstPageText = `Power Quality Report
7 Days Summary
Start time: 14-05-2025 06:00:00 AM End time: 21-05-2025 06:00:00 AM GMT: +05:30 Report Version: 2.1
Feeder Name: Solar Feeder 09
Network Nominal: 33 kV
Device Serial: 48211
`

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "/reports/7 Days report (TATA Block-15 Bay-09).pdf",
		Pages: []string{firstPageText},
	}

	meta := ExtractMetadata(doc)

	if meta.Component != "TATA Block-15 Bay-09" {
		t.Errorf("Component = %q", meta.Component)
	}
	if meta.Block != "15" {
		t.Errorf("Block = %q, want 15", meta.Block)
	}
	if meta.Feeder != "09" {
		t.Errorf("Feeder = %q, want 09", meta.Feeder)
	}
	if meta.Company != "TATA" {
		t.Errorf("Company = %q, want TATA", meta.Company)
	}
	if meta.StartTime != "14-05-2025 06:00:00 AM" {
		t.Errorf("StartTime = %q", meta.StartTime)
	}
	if meta.EndTime != "21-05-2025 06:00:00 AM" {
		t.Errorf("EndTime = %q", meta.EndTime)
	}
	if meta.GMT != "+05:30" {
		t.Errorf("GMT = %q, want +05:30", meta.GMT)
	}
	if meta.Version != "2.1" {
		t.Errorf("Version = %q, want 2.1", meta.Version)
	}
	if meta.FeederName != "Solar Feeder 09" {
		t.Errorf("FeederName = %q", meta.FeederName)
	}
	if meta.NetworkNominal != "33 kV" {
		t.Errorf("NetworkNominal = %q", meta.NetworkNominal)
	}
}

func TestExtractMetadataMissingFields(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Path:  "/reports/scan.pdf",
		Pages: []string{"nothing useful here"},
	}

	meta := ExtractMetadata(doc)

	for name, got := range map[string]string{
		"Component":      meta.Component,
		"Block":          meta.Block,
		"Feeder":         meta.Feeder,
		"Company":        meta.Company,
		"StartTime":      meta.StartTime,
		"GMT":            meta.GMT,
		"FeederName":     meta.FeederName,
		"NetworkNominal": meta.NetworkNominal,
	} {
		if got != NotFound {
			t.Errorf("%s = %q, want %q", name, got, NotFound)
		}
	}
}

func TestExtractMetadataTokensFromFilenameOnly(t *testing.T) {
	t.Parallel()

	// Site tokens may come from the filename even when the first page
	// carries none.
	doc := &Document{
		Path:  "ADANI BLOCK 7 FEEDER 3 weekly report.pdf",
		Pages: []string{""},
	}

	meta := ExtractMetadata(doc)
	if meta.Company != "ADANI" {
		t.Errorf("Company = %q, want ADANI", meta.Company)
	}
	if meta.Block != "7" {
		t.Errorf("Block = %q, want 7", meta.Block)
	}
	if meta.Feeder != "3" {
		t.Errorf("Feeder = %q, want 3", meta.Feeder)
	}
}

func TestParseReportTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			in:   "14-05-2025 06:00:00 AM",
			want: time.Date(2025, time.May, 14, 6, 0, 0, 0, time.UTC),
		},
		{
			// The hour field is 24-hour; the PM marker is ignored.
			in:   "21-05-2025 18:30:00 PM",
			want: time.Date(2025, time.May, 21, 18, 30, 0, 0, time.UTC),
		},
		{in: NotFound, wantErr: true},
		{in: "", wantErr: true},
		{in: "2025-05-14 06:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseReportTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseReportTime(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReportTime(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseReportTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetadataWindow(t *testing.T) {
	t.Parallel()

	meta := Metadata{
		StartTime: "14-05-2025 06:00:00 AM",
		EndTime:   "21-05-2025 06:00:00 AM",
	}
	start, end, ok := meta.Window()
	if !ok {
		t.Fatal("Window() ok = false")
	}
	if got := end.Sub(start); got != 7*24*time.Hour {
		t.Errorf("window length = %v, want 168h", got)
	}

	if _, _, ok := (Metadata{StartTime: NotFound, EndTime: NotFound}).Window(); ok {
		t.Error("Window() ok = true for missing bounds")
	}
}
