// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"snapui/internal/export"
	"snapui/internal/generation"
	"snapui/internal/highlight"
	"snapui/internal/htmx"
	"snapui/internal/metrics"
	"snapui/internal/middleware"
	"snapui/internal/render"
	"snapui/internal/view"
)

// Notices for conditions the view state machine reports.
const (
	msgExpired  = "This session has expired. Reload the page to start again."
	msgBusy     = "A component is already being generated."
	msgNotReady = "Generate a component first."
	msgBadForm  = "The form could not be read. Please try again."
)

// Generator groups the handlers of the generator page and its exports.
type Generator struct {
	renderer *render.Renderer
	views    *view.Generator
}

// NewGenerator creates a new Generator handler group.
func NewGenerator(renderer *render.Renderer, views *view.Generator) *Generator {
	return &Generator{renderer: renderer, views: views}
}

// panel is the model of the output partial.
type panel struct {
	ID      string
	Phase   view.Phase
	Mode    view.Mode
	Code    template.HTML
	Message string
}

func (p panel) Pending() bool { return p.Phase == view.PhaseRequesting }
func (p panel) Failed() bool  { return p.Phase == view.PhaseFailed }
func (p panel) Ready() bool   { return p.Phase == view.PhaseReady }
func (p panel) Preview() bool { return p.Mode == view.ModePreview }

// newPanel projects a view onto the output partial. The code view is only
// highlighted when it is the one shown.
func newPanel(s *view.State) panel {
	p := panel{ID: s.ID, Phase: s.Phase, Mode: s.Mode}
	if s.Failure != nil {
		p.Message = s.Failure.Message
	}
	if s.Ready() && s.Mode == view.ModeCode {
		code, err := highlight.HTML(s.Snippet)
		if err != nil {
			slog.Warn("highlight failed, falling back to plain text", "view", s.ID, "error", err)
			code = template.HTML("<pre><code>" + template.HTMLEscapeString(s.Snippet) + "</code></pre>")
		}
		p.Code = code
	}
	return p
}

// App opens a fresh view and renders the generator page. Every load starts
// over; the previous view simply expires.
func (h *Generator) App(w http.ResponseWriter, r *http.Request) {
	s, err := h.views.Open(r.Context())
	if err != nil {
		slog.Error("open view failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.page(w, r, http.StatusOK, s, generation.Request{}, nil)
}

// page renders the full generator page for s, echoing req back into the
// form.
func (h *Generator) page(w http.ResponseWriter, r *http.Request, status int, s *view.State, req generation.Request, flashes []render.Flash) {
	h.renderer.PageStatus(w, r, status, "generator", &render.PageData{
		Title:   "Generator",
		Section: "app",
		Flashes: flashes,
		Data: map[string]any{
			"ViewID":      s.ID,
			"MaxLen":      generation.MaxDescriptionLen,
			"Description": req.Description,
			"Stack":       req.Stack,
			"Stacks":      generation.Stacks(),
			"Panel":       newPanel(s),
		},
	})
}

// Generate handles a form submission. HTMX callers get the output partial
// and, for transient problems, a notify event; plain form posts get the
// whole page back with a flash.
func (h *Generator) Generate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "view")

	req, err := requestFromForm(w, r)
	if err != nil {
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			h.notice(w, r, http.StatusRequestEntityTooLarge, generation.TooLong.Message())
			return
		}
		slog.Warn("generate form unreadable", "view", id, "error", err)
		h.notice(w, r, http.StatusBadRequest, msgBadForm)
		return
	}

	s, err := h.views.Submit(r.Context(), id, req)

	switch {
	case errors.Is(err, view.ErrNotFound):
		notFound(h.renderer, w, r, msgExpired)
		return
	case errors.Is(err, view.ErrBusy):
		h.reply(w, r, http.StatusConflict, s, req, htmx.LevelInfo, msgBusy)
		return
	}

	if f, ok := generation.AsFailure(err); ok {
		if f.Kind.Local() {
			h.reply(w, r, http.StatusUnprocessableEntity, s, req, htmx.LevelError, f.Message())
			return
		}
		// Remote failures are recorded on the view and shown in the panel.
		h.reply(w, r, http.StatusOK, s, req, "", "")
		return
	}
	if err != nil {
		slog.Error("generate failed", "view", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.reply(w, r, http.StatusOK, s, req, "", "")
}

// reply answers Generate. A status other than 200 with HTMX leaves the
// current panel in place: HTMX does not swap error responses, but it still
// fires the notify event.
func (h *Generator) reply(w http.ResponseWriter, r *http.Request, status int, s *view.State, req generation.Request, level, message string) {
	if !htmx.IsRequest(r) {
		var flashes []render.Flash
		if message != "" {
			flashes = []render.Flash{{Type: level, Message: message}}
		}
		h.page(w, r, status, s, req, flashes)
		return
	}
	if message != "" {
		htmx.Notify(w, level, message)
	}
	h.renderer.Partial(w, status, "output", newPanel(s))
}

// Mode switches a ready view between code and preview.
func (h *Generator) Mode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "view")
	m, ok := view.ParseMode(chi.URLParam(r, "mode"))
	if !ok {
		notFound(h.renderer, w, r, "")
		return
	}

	s, err := h.views.SetMode(r.Context(), id, m)
	switch {
	case errors.Is(err, view.ErrNotFound):
		notFound(h.renderer, w, r, msgExpired)
		return
	case errors.Is(err, view.ErrNotReady):
		h.notice(w, r, http.StatusConflict, msgNotReady)
		return
	case err != nil:
		slog.Error("set mode failed", "view", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !htmx.IsRequest(r) {
		h.page(w, r, http.StatusOK, s, generation.Request{}, nil)
		return
	}
	h.renderer.Partial(w, http.StatusOK, "output", newPanel(s))
}

// snippet loads the view's snippet for an export. On failure it has
// already written the response.
func (h *Generator) snippet(w http.ResponseWriter, r *http.Request) (id, snippet string, ok bool) {
	id = chi.URLParam(r, "view")
	snippet, err := h.views.Snippet(r.Context(), id)
	if errors.Is(err, view.ErrNotFound) {
		notFound(h.renderer, w, r, msgExpired)
		return id, "", false
	}
	if err != nil {
		slog.Error("load snippet failed", "view", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return id, "", false
	}
	return id, snippet, true
}

// Copy returns the snippet as plain text for the clipboard script.
func (h *Generator) Copy(w http.ResponseWriter, r *http.Request) {
	_, snippet, ok := h.snippet(w, r)
	if !ok {
		return
	}
	text, err := export.Copy(snippet)
	metrics.ObserveExport(string(export.ActionCopy), err != nil)
	if err != nil {
		h.exportNotice(w, r, export.ActionCopy)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(text))
}

// Download sends the snippet as SnapUI-Code.html.
func (h *Generator) Download(w http.ResponseWriter, r *http.Request) {
	id, snippet, ok := h.snippet(w, r)
	if !ok {
		return
	}
	err := export.Download(w, snippet)
	metrics.ObserveExport(string(export.ActionDownload), errors.Is(err, export.ErrNoSnippet))
	if errors.Is(err, export.ErrNoSnippet) {
		h.exportNotice(w, r, export.ActionDownload)
		return
	}
	if err != nil {
		slog.Warn("download write failed", "view", id, "error", err)
	}
}

// Open serves the snippet as a standalone document for a new tab.
func (h *Generator) Open(w http.ResponseWriter, r *http.Request) {
	_, snippet, ok := h.snippet(w, r)
	if !ok {
		return
	}
	doc, err := export.Standalone(snippet)
	metrics.ObserveExport(string(export.ActionOpen), err != nil)
	if err != nil {
		h.exportNotice(w, r, export.ActionOpen)
		return
	}
	w.Header().Set("Content-Security-Policy", middleware.SandboxPolicy)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(doc))
}

// Preview serves the document shown inside the sandboxed iframe. Reloading
// the frame re-renders the same document.
func (h *Generator) Preview(w http.ResponseWriter, r *http.Request) {
	_, snippet, ok := h.snippet(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Security-Policy", middleware.SandboxPolicy)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(export.Preview(snippet)))
}

func (h *Generator) exportNotice(w http.ResponseWriter, r *http.Request, a export.Action) {
	h.notice(w, r, http.StatusConflict, a.Notice())
}

// notice reports a transient problem: HTMX and script callers get a notify
// event and the message as text, browsers navigating directly get a small
// page linking back.
func (h *Generator) notice(w http.ResponseWriter, r *http.Request, status int, message string) {
	htmx.Notify(w, htmx.LevelError, message)
	if htmx.IsRequest(r) || r.Header.Get("Accept") == "text/plain" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(message))
		return
	}
	h.renderer.PageStatus(w, r, status, "notice", &render.PageData{
		Title: "Notice",
		Data:  map[string]any{"Message": message, "Back": "/app"},
	})
}
