// SPDX-License-Identifier: MPL-2.0

package graphs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Embedded media shows up in these formats; registering the
	// decoders lets image.Decode handle all of them.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// minImageBytes filters out stub media entries that cannot be real
// images.
const minImageBytes = 100

const mediaPrefix = "word/media/"

// jpegQuality matches the quality the reports' charts were embedded at.
const jpegQuality = 95

// Extracted describes one chart written to the output directory.
type Extracted struct {
	// Name is the written filename, e.g. "chart_001_image3.png".
	Name string
	// Source is the media entry inside the document.
	Source string
	// Width and Height are the image dimensions in pixels.
	Width, Height int
}

// ExtractDOCX pulls likely-graph images out of a DOCX file into outDir.
// Duplicate media entries (same name and size) are processed once.
// Returns the extracted charts in document order.
func ExtractDOCX(docxPath, outDir string) ([]Extracted, error) {
	archive, err := zip.OpenReader(docxPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", docxPath, err)
	}
	defer archive.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var extracted []Extracted
	seen := make(map[string]bool)

	for _, entry := range archive.File {
		if !strings.HasPrefix(entry.Name, mediaPrefix) || strings.HasSuffix(entry.Name, "/") {
			continue
		}

		key := fmt.Sprintf("%s_%d", entry.Name, entry.UncompressedSize64)
		if seen[key] {
			continue
		}
		seen[key] = true

		if entry.UncompressedSize64 < minImageBytes {
			continue
		}

		data, err := readEntry(entry)
		if err != nil {
			continue
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		if !LikelyGraph(img) {
			continue
		}

		base := filepath.Base(entry.Name)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		ext := normalizeExt(filepath.Ext(base))

		name := fmt.Sprintf("chart_%03d_%s.%s", len(extracted)+1, stem, ext)
		if err := saveImage(img, filepath.Join(outDir, name), ext); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", name, err)
		}

		bounds := img.Bounds()
		extracted = append(extracted, Extracted{
			Name:   name,
			Source: entry.Name,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		})
	}

	return extracted, nil
}

func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeExt maps a media extension to the output encoding. JPEG stays
// JPEG; everything else re-encodes as PNG.
func normalizeExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return "jpg"
	default:
		return "png"
	}
}

// saveImage writes the image in the chosen encoding. JPEG cannot carry
// alpha, so transparent images are flattened onto a white background
// first.
func saveImage(img image.Image, path, ext string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if ext == "jpg" {
		return jpeg.Encode(out, flattenWhite(img), &jpeg.Options{Quality: jpegQuality})
	}
	return png.Encode(out, img)
}

func flattenWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
