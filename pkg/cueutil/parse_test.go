// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"strings"
	"testing"

	"hatk-cli/pkg/cueutil"
)

const testSchema = `
#Widget: {
	name:  string & !=""
	count: int & >=0
	tags?: [...string]
}
`

type widget struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestDecode_Valid(t *testing.T) {
	t.Parallel()

	data := []byte(`
name:  "probe"
count: 3
tags: ["a", "b"]
`)

	result, err := cueutil.DecodeString[widget](testSchema, data, "#Widget")
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}
	if result.Value.Name != "probe" {
		t.Errorf("Name = %q, want %q", result.Value.Name, "probe")
	}
	if result.Value.Count != 3 {
		t.Errorf("Count = %d, want 3", result.Value.Count)
	}
	if len(result.Value.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 entries", result.Value.Tags)
	}
}

func TestDecode_SchemaViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "wrong type", data: `name: "x"` + "\n" + `count: "three"`},
		{name: "empty name", data: `name: ""` + "\n" + `count: 1`},
		{name: "negative count", data: `name: "x"` + "\n" + `count: -1`},
		{name: "missing field", data: `name: "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cueutil.DecodeString[widget](testSchema, []byte(tt.data), "#Widget", cueutil.WithFilename("widget.cue"))
			if err == nil {
				t.Fatal("DecodeString() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), "widget.cue") {
				t.Errorf("error %q does not mention the filename", err)
			}
		})
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := cueutil.DecodeString[widget](testSchema, []byte(`name: "x`), "#Widget")
	if err == nil {
		t.Fatal("DecodeString() error = nil, want syntax error")
	}
}

func TestDecode_FileSizeCap(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "x"` + "\n" + `count: 1`)
	_, err := cueutil.DecodeString[widget](testSchema, data, "#Widget", cueutil.WithMaxFileSize(4))
	if err == nil {
		t.Fatal("DecodeString() error = nil, want size error")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error %q does not report the size cap", err)
	}
}

func TestDecode_UnknownSchemaPath(t *testing.T) {
	t.Parallel()

	_, err := cueutil.DecodeString[widget](testSchema, []byte(`name: "x"`), "#Nope")
	if err == nil {
		t.Fatal("DecodeString() error = nil, want schema lookup error")
	}
}
