// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"snapui/internal/generation"
	"snapui/internal/htmx"
	"snapui/internal/render"
)

// Public groups handlers for the static pages of the site.
type Public struct {
	renderer *render.Renderer
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer) *Public {
	return &Public{renderer: renderer}
}

// Home renders the landing page.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "home", &render.PageData{
		Title:   "Home",
		Section: "home",
		Data: map[string]any{
			"Stacks": generation.Stacks(),
		},
	})
}

// NotFound renders the 404 page for any unmatched route.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	notFound(p.renderer, w, r, "")
}

// notFound renders the 404 page, with message replacing the default text
// when set. HTMX callers also get a toast.
func notFound(rn *render.Renderer, w http.ResponseWriter, r *http.Request, message string) {
	if message != "" && htmx.IsRequest(r) {
		htmx.Notify(w, htmx.LevelError, message)
	}
	rn.PageStatus(w, r, http.StatusNotFound, "notfound", &render.PageData{
		Title: "Not found",
		Data:  map[string]any{"Message": message},
	})
}
