// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the real renderer, an in-memory view store and a
// scripted model provider.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"snapui/internal/generation"
	"snapui/internal/render"
	"snapui/internal/view"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	response string
	err      error
	calls    atomic.Int32
}

func (m *mockAIProvider) Name() string { return "mock" }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	m.calls.Add(1)
	return m.response, m.err
}

type testEnv struct {
	provider *mockAIProvider
	views    *view.Generator
	router   http.Handler
}

func newTestEnv(t *testing.T, p *mockAIProvider) *testEnv {
	t.Helper()

	renderer, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	store := view.NewMemoryStore(time.Minute)
	t.Cleanup(func() { store.Close() })
	views := view.NewGenerator(store, generation.New(p, time.Second))

	pub := NewPublic(renderer)
	gen := NewGenerator(renderer, views)

	r := chi.NewRouter()
	r.Get("/", pub.Home)
	r.Get("/app", gen.App)
	r.Route("/app/{view}", func(r chi.Router) {
		r.Post("/generate", gen.Generate)
		r.Get("/mode/{mode}", gen.Mode)
		r.Get("/copy", gen.Copy)
		r.Get("/code.html", gen.Download)
		r.Get("/open", gen.Open)
		r.Get("/preview", gen.Preview)
	})
	r.NotFound(pub.NotFound)

	return &testEnv{provider: p, views: views, router: r}
}

// openView creates a view directly through the generator.
func (e *testEnv) openView(t *testing.T) string {
	t.Helper()
	s, err := e.views.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s.ID
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(path string, htmxReq bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmxReq {
		req.Header.Set("HX-Request", "true")
	}
	return e.do(req)
}

func (e *testEnv) generate(id, description, stack string, htmxReq bool) *httptest.ResponseRecorder {
	form := url.Values{"description": {description}, "stack": {stack}}
	req := httptest.NewRequest(http.MethodPost, "/app/"+id+"/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmxReq {
		req.Header.Set("HX-Request", "true")
	}
	return e.do(req)
}

// notice decodes the notify event from an HX-Trigger header.
func notice(t *testing.T, rr *httptest.ResponseRecorder) (level, message string) {
	t.Helper()
	raw := rr.Header().Get("HX-Trigger")
	if raw == "" {
		return "", ""
	}
	var trigger map[string]struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(raw), &trigger); err != nil {
		t.Fatalf("HX-Trigger %q: %v", raw, err)
	}
	n := trigger["notify"]
	return n.Level, n.Message
}
