// SPDX-License-Identifier: MPL-2.0

package session

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"hatk-cli/internal/compliance"
	"hatk-cli/internal/export"
	"hatk-cli/internal/graphs"
	"hatk-cli/internal/report"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
	contentTypeZip  = "application/zip"
)

func (s *Server) handleDownloadTables(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.documentForDownload(w, r)
	if !ok {
		return
	}

	data, err := export.WriteTables(report.ExtractTables(doc))
	if err != nil {
		s.httpError(w, fmt.Errorf("failed to build workbook: %w", err), http.StatusInternalServerError)
		return
	}

	sendAttachment(w, contentTypeXLSX, downloadName(doc.Name(), "harmonics", "xlsx"), data)
}

func (s *Server) handleDownloadViolations(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.documentForDownload(w, r)
	if !ok {
		return
	}

	violations := compliance.AnalyzeAll(report.ExtractTables(doc))
	data, err := export.WriteViolationsCSV(violations)
	if err != nil {
		s.httpError(w, fmt.Errorf("failed to build CSV: %w", err), http.StatusInternalServerError)
		return
	}

	sendAttachment(w, contentTypeCSV, downloadName(doc.Name(), "violations", "csv"), data)
}

func (s *Server) handleDownloadGraphs(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		s.httpError(w, fmt.Errorf("missing file parameter"), http.StatusBadRequest)
		return
	}
	path, err := s.resolvePath(name)
	if err != nil {
		s.httpError(w, err, http.StatusNotFound)
		return
	}

	outDir := s.graphsDir(filepath.Base(path))
	if _, err := graphs.ExtractDOCX(path, outDir); err != nil {
		s.httpError(w, fmt.Errorf("failed to extract graphs: %w", err), http.StatusUnprocessableEntity)
		return
	}

	data, err := graphs.ZipImages(outDir)
	if err != nil {
		s.httpError(w, fmt.Errorf("failed to build archive: %w", err), http.StatusInternalServerError)
		return
	}
	if data == nil {
		s.httpError(w, fmt.Errorf("no graph images found in %q", name), http.StatusNotFound)
		return
	}

	sendAttachment(w, contentTypeZip, downloadName(name, "graphs", "zip"), data)
}

func (s *Server) documentForDownload(w http.ResponseWriter, r *http.Request) (*report.Document, bool) {
	name := r.URL.Query().Get("file")
	if name == "" {
		s.httpError(w, fmt.Errorf("missing file parameter"), http.StatusBadRequest)
		return nil, false
	}
	path, err := s.resolvePath(name)
	if err != nil {
		s.httpError(w, err, http.StatusNotFound)
		return nil, false
	}
	doc, err := report.Load(path)
	if err != nil {
		s.httpError(w, fmt.Errorf("failed to load report: %w", err), http.StatusUnprocessableEntity)
		return nil, false
	}
	return doc, true
}

// downloadName derives the attachment filename from the source document,
// e.g. "WEEKLY REPORT.pdf" -> "WEEKLY REPORT_harmonics.xlsx".
func downloadName(source, suffix, ext string) string {
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	return fmt.Sprintf("%s_%s.%s", stem, suffix, ext)
}

func sendAttachment(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	_, _ = w.Write(data)
}
