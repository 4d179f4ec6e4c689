// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for SnapUI pages.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"snapui/internal/htmx"
	"snapui/internal/middleware"
)

//go:embed templates
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active nav section ("home", "app")
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
	funcMap  template.FuncMap
}

// New parses every page template from the embedded filesystem, each paired
// with the base layout and the shared partials. When devMode is true,
// templates load the unminified HTMX build.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "nav-link active"
				}
				return "nav-link"
			},
			"isDev": func() bool {
				return devMode
			},
		},
	}

	partials, err := template.New("partials").Funcs(r.funcMap).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.partials = partials

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/partials/*.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Has reports whether a page template with the given name exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.pages[name]
	return ok
}

// Page renders a full page or, for HTMX requests, only its "content" block
// with a 200 status.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.pages[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = &PageData{}
	}
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	execName := "base.html"
	if htmx.IsRequest(r) {
		execName = "content"
	}
	rn.write(w, status, tmpl, execName, data)
}

// Partial renders one named partial (for example "output") as an HTMX
// fragment.
func (rn *Renderer) Partial(w http.ResponseWriter, status int, name string, data any) {
	rn.write(w, status, rn.partials, name, data)
}

// write executes into a buffer first so a template error never leaves a
// half-written 200 response.
func (rn *Renderer) write(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
