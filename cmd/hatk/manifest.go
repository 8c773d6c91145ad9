// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"hatk-cli/internal/issue"
	"hatk-cli/pkg/hatkfile"
)

// loadManifest locates and parses the toolkit manifest per the standard
// search order (--manifest flag, ./hatkfile.cue, ./hatkfile.toml,
// ~/.hatk/hatkfile.cue).
func loadManifest() (*hatkfile.Hatkfile, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	path, err := hatkfile.Locate(manifestPath, wd)
	if err != nil {
		renderIssue(issue.ManifestNotFoundId)
		return nil, &ExitError{Code: 1, Err: err}
	}

	h, err := hatkfile.Parse(path)
	if err != nil {
		renderIssue(issue.ManifestParseErrorId)
		return nil, &ExitError{Code: 1, Err: issue.NewContext().
			WithOperation("parse manifest").
			WithResource(path).
			WithSuggestion("Run 'hatk init' to see a valid manifest layout").
			Wrap(err).
			BuildError()}
	}
	return h, nil
}
