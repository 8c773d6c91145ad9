// SPDX-License-Identifier: MPL-2.0

package hatkfile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hatk-cli/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
)

//go:embed hatkfile_schema.cue
var hatkfileSchema string

// Parse reads and parses a manifest from the given path. The format is
// chosen by extension: .cue files go through schema unification, .toml
// files decode directly and rely on the Go-level validation.
func Parse(path string) (*Hatkfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses manifest content from bytes. path determines the format
// and is recorded as the manifest's FilePath.
func ParseBytes(data []byte, path string) (*Hatkfile, error) {
	var h *Hatkfile
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		h, err = parseTOML(data, path)
	default:
		h, err = parseCUE(data, path)
	}
	if err != nil {
		return nil, err
	}

	h.FilePath = path
	if err := h.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

func parseCUE(data []byte, path string) (*Hatkfile, error) {
	result, err := cueutil.DecodeString[Hatkfile](
		hatkfileSchema,
		data,
		"#Hatkfile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

func parseTOML(data []byte, path string) (*Hatkfile, error) {
	var h Hatkfile
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &h, nil
}

// Locate finds a manifest by the standard search order: explicit path,
// hatkfile.cue / hatkfile.toml in dir, then ~/.hatk/hatkfile.cue.
// Returns the resolved path or an error listing the searched locations.
func Locate(explicit, dir string) (string, error) {
	if explicit != "" {
		if fileExists(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("manifest not found at %s", explicit)
	}

	candidates := []string{
		filepath.Join(dir, FileName+".cue"),
		filepath.Join(dir, FileName+".toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".hatk", FileName+".cue"))
	}

	for _, c := range candidates {
		if fileExists(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("no manifest found (searched %s)", strings.Join(candidates, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
