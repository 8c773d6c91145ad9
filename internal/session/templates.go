// SPDX-License-Identifier: MPL-2.0

package session

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplates holds one parsed template per page; every page file
// also pulls in the shared layout definitions.
var pageTemplates = func() map[string]*template.Template {
	pages := []string{"hub", "summary", "tables", "graphs", "picker"}
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		out[page] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html",
			fmt.Sprintf("templates/%s.html", page),
		))
	}
	return out
}()

// render executes a page template. Template output is buffered so a
// rendering failure yields a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		s.httpError(w, fmt.Errorf("unknown page %q", page), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.httpError(w, fmt.Errorf("failed to render %s: %w", page, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
