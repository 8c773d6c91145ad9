// SPDX-License-Identifier: MPL-2.0

package graphs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExts lists the extensions bundled by ZipImages.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

// ZipImages bundles the image files in dir into a zip archive, entries
// sorted by name. Returns nil data when the directory holds no images.
func ZipImages(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}

		entry, err := w.Create(name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		f.Close()
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
