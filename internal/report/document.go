// SPDX-License-Identifier: MPL-2.0

// Package report extracts power-quality measurements from weekly and daily
// harmonic report files. All extraction is text based: PDF pages are reduced
// to plain text and scanned with the same patterns that apply to plain-text
// captures, so the two sources behave identically downstream.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxTextFileSize caps plain-text report captures. PDFs are bounded by the
// parser itself.
const maxTextFileSize = 32 << 20

// Document is a report reduced to one text string per page.
type Document struct {
	// Path is the file the document was loaded from.
	Path string
	// Pages holds the extracted text, one entry per page in order.
	Pages []string
}

// Name returns the document's base filename.
func (d *Document) Name() string {
	return filepath.Base(d.Path)
}

// Page returns the text of page i (0-based), or "" when out of range.
func (d *Document) Page(i int) string {
	if i < 0 || i >= len(d.Pages) {
		return ""
	}
	return d.Pages[i]
}

// Load reads a report file into a Document. PDF files go through the PDF
// text extractor; anything else is treated as a plain-text capture with
// form-feed page separators.
func Load(path string) (*Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}
	return loadText(path)
}

func loadPDF(path string) (*Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	doc := &Document{Path: path}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the report;
			// downstream extraction treats it as empty.
			doc.Pages = append(doc.Pages, "")
			continue
		}
		doc.Pages = append(doc.Pages, text)
	}
	return doc, nil
}

func loadText(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > maxTextFileSize {
		return nil, fmt.Errorf("report file too large: %s (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Document{
		Path:  path,
		Pages: strings.Split(string(data), "\f"),
	}, nil
}
