// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for SnapUI.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"snapui/internal/handlers"
	"snapui/internal/metrics"
	"snapui/internal/middleware"
	"snapui/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. secureCookies marks the CSRF cookie Secure.
func New(public *handlers.Public, gen *handlers.Generator, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Operational endpoints: no CSRF.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Handle("/static/*", staticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		r.Get("/", public.Home)
		r.Get("/app", gen.App)

		r.Route("/app/{view}", func(r chi.Router) {
			r.Post("/generate", gen.Generate)
			r.Get("/mode/{mode}", gen.Mode)
			r.Get("/copy", gen.Copy)
			r.Get("/code.html", gen.Download)

			// Generated code runs in an opaque origin.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Sandboxed)
				r.Get("/open", gen.Open)
				r.Get("/preview", gen.Preview)
			})
		})
	})

	r.NotFound(public.NotFound)

	return r
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("static assets: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
