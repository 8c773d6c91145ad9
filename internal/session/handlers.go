// SPDX-License-Identifier: MPL-2.0

package session

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"hatk-cli/internal/compliance"
	"hatk-cli/internal/graphs"
	"hatk-cli/internal/report"
	"hatk-cli/internal/scan"
	"hatk-cli/pkg/hatkfile"
)

type (
	hubData struct {
		Toolkit     string
		Description string
		Modules     []hubModule
		Reports     scan.Result
		ReportsDir  string
	}

	hubModule struct {
		Name        string
		Description string
		Icon        string
		Href        string
	}

	summaryData struct {
		Toolkit    string
		FileName   string
		Weekly     bool
		Meta       report.Metadata
		Schedule   []compliance.ScheduleRow
		Limits     compliance.Limits
		VoltageTHD []compliance.DailySummary
		CurrentTDD []compliance.DailySummary
		Events     []report.Event
	}

	tableView struct {
		Title  string
		Phases [3]string
		Rows   []report.HarmonicRow
	}

	tablesData struct {
		Toolkit    string
		FileName   string
		Tables     []tableView
		Violations []compliance.Violation
	}

	graphsData struct {
		Toolkit  string
		FileName string
		Images   []graphs.Extracted
	}

	pickerData struct {
		Toolkit string
		Title   string
		Action  string
		Accept  string
		Reports []scan.Entry
	}

	apiReport struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
	}

	apiReportsResponse struct {
		ReportsDir string      `json:"reports_dir"`
		Weekly     []apiReport `json:"weekly"`
		Daily      []apiReport `json:"daily"`
		Skipped    []apiReport `json:"skipped"`
	}
)

func moduleHref(kind hatkfile.ModuleKind) string {
	switch kind {
	case hatkfile.KindSummary:
		return "/summary"
	case hatkfile.KindTables:
		return "/tables"
	case hatkfile.KindGraphs:
		return "/graphs"
	default:
		return "/"
	}
}

func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	result, err := scan.Reports(s.opts.ReportsDir)
	if err != nil {
		s.logger.Warn("reports directory scan failed", "dir", s.opts.ReportsDir, "error", err)
	}

	data := hubData{
		Toolkit:     s.opts.Manifest.Toolkit,
		Description: s.opts.Manifest.Description,
		Reports:     result,
		ReportsDir:  s.opts.ReportsDir,
	}
	for _, m := range s.opts.Manifest.Modules {
		data.Modules = append(data.Modules, hubModule{
			Name:        m.Name,
			Description: m.Description,
			Icon:        m.Icon,
			Href:        moduleHref(m.Kind),
		})
	}

	s.render(w, "hub", data)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	path, shown := s.reportFromRequest(w, r, pickerData{
		Toolkit: s.opts.Manifest.Toolkit,
		Title:   "Weekly Summary",
		Action:  "/summary",
		Accept:  ".pdf,.txt",
	})
	if !shown {
		return
	}

	doc, err := report.Load(path)
	if err != nil {
		s.httpError(w, fmt.Errorf("failed to load report: %w", err), http.StatusUnprocessableEntity)
		return
	}

	meta := report.ExtractMetadata(doc)
	daily := report.ExtractDailyTables(doc)
	data := summaryData{
		Toolkit:    s.opts.Manifest.Toolkit,
		FileName:   doc.Name(),
		Weekly:     report.IsWeekly(doc.Name()),
		Meta:       meta,
		Schedule:   compliance.BuildSchedule(meta),
		Limits:     s.opts.Limits,
		VoltageTHD: compliance.SummarizeDaily(daily.VoltageTHD, s.opts.Limits.VoltageDaily),
		CurrentTDD: compliance.SummarizeDaily(daily.CurrentTDD, s.opts.Limits.CurrentDaily),
		Events:     report.ExtractEvents(doc),
	}

	s.render(w, "summary", data)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	path, shown := s.reportFromRequest(w, r, pickerData{
		Toolkit: s.opts.Manifest.Toolkit,
		Title:   "Harmonic Tables",
		Action:  "/tables",
		Accept:  ".pdf,.txt",
	})
	if !shown {
		return
	}

	doc, err := report.Load(path)
	if err != nil {
		s.httpError(w, fmt.Errorf("failed to load report: %w", err), http.StatusUnprocessableEntity)
		return
	}

	tables := report.ExtractTables(doc)
	data := tablesData{
		Toolkit:    s.opts.Manifest.Toolkit,
		FileName:   doc.Name(),
		Violations: compliance.AnalyzeAll(tables),
	}
	for _, kind := range report.TableKinds {
		rows := tables[kind]
		if len(rows) == 0 {
			continue
		}
		data.Tables = append(data.Tables, tableView{
			Title:  kind.Title(),
			Phases: kind.PhaseNames(),
			Rows:   rows,
		})
	}

	s.render(w, "tables", data)
}

func (s *Server) handleGraphs(w http.ResponseWriter, r *http.Request) {
	path, shown := s.reportFromRequest(w, r, pickerData{
		Toolkit: s.opts.Manifest.Toolkit,
		Title:   "Graph Extraction",
		Action:  "/graphs",
		Accept:  ".docx",
	})
	if !shown {
		return
	}

	name := filepath.Base(path)
	outDir := s.graphsDir(name)
	images, err := graphs.ExtractDOCX(path, outDir)
	if err != nil {
		s.httpError(w, fmt.Errorf("failed to extract graphs: %w", err), http.StatusUnprocessableEntity)
		return
	}

	s.render(w, "graphs", graphsData{
		Toolkit:  s.opts.Manifest.Toolkit,
		FileName: name,
		Images:   images,
	})
}

func (s *Server) handleAPIReports(w http.ResponseWriter, r *http.Request) {
	result, err := scan.Reports(s.opts.ReportsDir)
	if err != nil {
		s.httpError(w, err, http.StatusInternalServerError)
		return
	}

	resp := apiReportsResponse{
		ReportsDir: s.opts.ReportsDir,
		Weekly:     apiReports(result.Weekly),
		Daily:      apiReports(result.Daily),
		Skipped:    apiReports(result.Skipped),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode reports listing", "error", err)
	}
}

func apiReports(entries []scan.Entry) []apiReport {
	out := make([]apiReport, 0, len(entries))
	for _, e := range entries {
		out = append(out, apiReport{Name: e.Name, Kind: e.Kind.String()})
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// reportFromRequest resolves the file a module page should analyze: an
// uploaded file on POST, a ?file= reference on GET, or — with neither —
// the picker page. The second return is false when a response has
// already been written.
func (s *Server) reportFromRequest(w http.ResponseWriter, r *http.Request, picker pickerData) (string, bool) {
	switch r.Method {
	case http.MethodPost:
		path, err := s.receiveUpload(w, r)
		if err != nil {
			s.httpError(w, err, http.StatusBadRequest)
			return "", false
		}
		return path, true

	case http.MethodGet:
		name := r.URL.Query().Get("file")
		if name == "" {
			result, err := scan.Reports(s.opts.ReportsDir)
			if err == nil {
				picker.Reports = result.All()
			}
			s.render(w, "picker", picker)
			return "", false
		}
		path, err := s.resolvePath(name)
		if err != nil {
			s.httpError(w, err, http.StatusNotFound)
			return "", false
		}
		return path, true

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
}

// receiveUpload reads the multipart "report" field into the session work
// dir, bounded by maxUploadBytes.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", fmt.Errorf("failed to parse upload: %w", err)
	}

	file, header, err := r.FormFile("report")
	if err != nil {
		return "", fmt.Errorf("missing report upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	return s.saveUpload(header.Filename, data)
}

// resolvePath maps a ?file= base name to a real path: session uploads
// first, then the scanned reports directory, then any other file sitting
// in the reports directory (DOCX documents are not report files and do
// not appear in the scan listing).
func (s *Server) resolvePath(name string) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if path, ok := s.uploadPath(name); ok {
		return path, nil
	}
	if entry, err := scan.Find(s.opts.ReportsDir, name); err == nil {
		return entry.Path, nil
	}

	path := filepath.Join(s.opts.ReportsDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file %q not found in %s", name, s.opts.ReportsDir)
	}
	return path, nil
}

// graphsDir returns the per-document output directory for extracted
// images inside the session work dir.
func (s *Server) graphsDir(docName string) string {
	stem := strings.TrimSuffix(docName, filepath.Ext(docName))
	return filepath.Join(s.workDir, "graphs", stem)
}

func (s *Server) httpError(w http.ResponseWriter, err error, status int) {
	s.logger.Warn("request failed", "status", status, "error", err)
	http.Error(w, err.Error(), status)
}
