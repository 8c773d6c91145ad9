// SPDX-License-Identifier: MPL-2.0

package graphs

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chartImage synthesizes a chart-like image: white background, dark axes,
// and a varied data line.
func chartImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	// Axes along the left and bottom edges.
	for y := 0; y < height; y++ {
		img.Set(10, y, color.Black)
	}
	for x := 0; x < width; x++ {
		img.Set(x, height-10, color.Black)
	}
	// A jagged trace with varied shades.
	for x := 10; x < width; x++ {
		y := height/2 + (x%40) - 20
		if y >= 0 && y < height {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: 80, B: 160, A: 255})
		}
	}
	return img
}

func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestLikelyGraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"chart", chartImage(400, 250), true},
		{"tiny icon", chartImage(50, 40), false},
		{"below min height", solidImage(110, 70, color.White), false},
		{"extreme aspect", solidImage(2000, 100, color.Black), false},
		{"small solid fill", solidImage(150, 100, color.Gray{Y: 200}), false},
		{"large solid fill via size fallback", solidImage(300, 200, color.Gray{Y: 200}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := LikelyGraph(tt.img); got != tt.want {
				t.Errorf("LikelyGraph(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

type docxEntry struct {
	name string
	data []byte
}

// writeDOCX builds a minimal DOCX-shaped zip with the given media entries
// in order.
func writeDOCX(t *testing.T, path string, media []docxEntry) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	doc, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Write([]byte("<w:document/>")); err != nil {
		t.Fatal(err)
	}

	for _, e := range media {
		entry, err := w.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write(e.data); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docxPath := filepath.Join(dir, "report.docx")
	outDir := filepath.Join(dir, "charts")

	writeDOCX(t, docxPath, []docxEntry{
		{"word/media/image1.png", encodePNG(t, chartImage(400, 250))},
		{"word/media/image2.png", encodePNG(t, chartImage(50, 40))},
		{"word/media/stub.png", []byte("tiny")},
		{"word/media/photo.jpg", encodeJPEG(t, chartImage(320, 200))},
		{"word/other/skip.png", encodePNG(t, chartImage(400, 250))},
	})

	extracted, err := ExtractDOCX(docxPath, outDir)
	if err != nil {
		t.Fatalf("ExtractDOCX() error = %v", err)
	}
	if len(extracted) != 2 {
		t.Fatalf("extracted = %d charts, want 2: %+v", len(extracted), extracted)
	}

	first := extracted[0]
	if first.Name != "chart_001_image1.png" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Width != 400 || first.Height != 250 {
		t.Errorf("dimensions = %dx%d", first.Width, first.Height)
	}

	// The JPEG chart keeps its encoding and numbering.
	second := extracted[1]
	if second.Name != "chart_002_photo.jpg" {
		t.Errorf("Name = %q", second.Name)
	}

	// Written files decode back.
	for _, e := range extracted {
		data, err := os.ReadFile(filepath.Join(outDir, e.Name))
		if err != nil {
			t.Fatalf("reading %s: %v", e.Name, err)
		}
		if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("decoding %s: %v", e.Name, err)
		}
	}
}

func TestExtractDOCXDeduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docxPath := filepath.Join(dir, "report.docx")

	// Zip archives may carry repeated entries; only the first counts.
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	data := encodePNG(t, chartImage(400, 250))
	for i := 0; i < 2; i++ {
		entry, err := w.Create("word/media/image1.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(docxPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	extracted, err := ExtractDOCX(docxPath, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("ExtractDOCX() error = %v", err)
	}
	if len(extracted) != 1 {
		t.Errorf("extracted = %d, want 1", len(extracted))
	}
}

func TestExtractDOCXNotAZip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractDOCX(path, t.TempDir()); err == nil {
		t.Error("ExtractDOCX() expected error for non-zip input")
	}
}

func TestZipImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"chart_002_b.png", "chart_001_a.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	data, err := ZipImages(dir)
	if err != nil {
		t.Fatalf("ZipImages() error = %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.File) != 2 {
		t.Fatalf("entries = %d, want 2", len(r.File))
	}
	// Sorted order, text file excluded.
	if r.File[0].Name != "chart_001_a.png" || r.File[1].Name != "chart_002_b.png" {
		var names []string
		for _, f := range r.File {
			names = append(names, f.Name)
		}
		t.Errorf("entries = %v", strings.Join(names, ", "))
	}
}

func TestZipImagesEmptyDir(t *testing.T) {
	t.Parallel()

	data, err := ZipImages(t.TempDir())
	if err != nil {
		t.Fatalf("ZipImages() error = %v", err)
	}
	if data != nil {
		t.Errorf("data = %d bytes, want nil", len(data))
	}
}
