// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// issueToken performs a GET through h and returns the CSRF cookie it set.
func issueToken(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app", nil))
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestNewCSRFCookieFlags(t *testing.T) {
	for _, secure := range []bool{true, false} {
		c := issueToken(t, NewCSRF(secure)(okHandler()))
		if c.Secure != secure {
			t.Errorf("cookie Secure: got %v, want %v", c.Secure, secure)
		}
		if !c.HttpOnly {
			t.Error("cookie should be HttpOnly")
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Errorf("cookie SameSite: got %v, want StrictMode", c.SameSite)
		}
		if len(c.Value) != 2*csrfTokenLength {
			t.Errorf("token length: got %d", len(c.Value))
		}
	}
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	h := NewCSRF(false)(okHandler())
	cookie := issueToken(t, h)

	req := httptest.NewRequest(http.MethodPost, "/app/v/generate", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("POST without token: got %d, want 403", rr.Code)
	}
}

func TestCSRFRejectsWrongToken(t *testing.T) {
	h := NewCSRF(false)(okHandler())
	cookie := issueToken(t, h)

	req := httptest.NewRequest(http.MethodPost, "/app/v/generate", nil)
	req.AddCookie(cookie)
	req.Header.Set(CSRFHeaderName, strings.Repeat("0", 64))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("POST with wrong token: got %d, want 403", rr.Code)
	}
}

func TestCSRFAcceptsHeaderToken(t *testing.T) {
	h := NewCSRF(false)(okHandler())
	cookie := issueToken(t, h)

	req := httptest.NewRequest(http.MethodPost, "/app/v/generate", nil)
	req.AddCookie(cookie)
	req.Header.Set(CSRFHeaderName, cookie.Value)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("POST with valid token: got %d, want 200", rr.Code)
	}
}

func TestCSRFAcceptsFormFieldToken(t *testing.T) {
	var description string
	h := NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		description = r.FormValue("description")
		w.WriteHeader(http.StatusOK)
	}))
	cookie := issueToken(t, h)

	form := url.Values{CSRFFormField: {cookie.Value}, "description": {"a navbar"}}
	req := httptest.NewRequest(http.MethodPost, "/app/v/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("POST with form token: got %d, want 200", rr.Code)
	}
	if description != "a navbar" {
		t.Errorf("form still readable downstream: got %q", description)
	}
}

func TestCSRFTokenFromCtx(t *testing.T) {
	t.Run("fresh token matches cookie", func(t *testing.T) {
		var ctxToken string
		h := NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxToken = CSRFTokenFromCtx(r.Context())
		}))
		cookie := issueToken(t, h)
		if ctxToken == "" || ctxToken != cookie.Value {
			t.Errorf("context token %q != cookie token %q", ctxToken, cookie.Value)
		}
	})

	t.Run("existing cookie is reused", func(t *testing.T) {
		var ctxToken string
		h := NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxToken = CSRFTokenFromCtx(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/app", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "existing"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if ctxToken != "existing" {
			t.Errorf("context token: got %q, want existing", ctxToken)
		}
		if len(rr.Result().Cookies()) != 0 {
			t.Error("no new cookie should be issued")
		}
	})

	t.Run("empty outside middleware", func(t *testing.T) {
		if got := CSRFTokenFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestCSRFMethods(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		t.Run(method, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewCSRF(false)(okHandler()).ServeHTTP(rr, httptest.NewRequest(method, "/app", nil))
			if rr.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rr.Code)
			}
		})
	}
	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			h := NewCSRF(false)(okHandler())
			req := httptest.NewRequest(method, "/app/v", nil)
			req.AddCookie(issueToken(t, h))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != http.StatusForbidden {
				t.Errorf("%s without token: got %d, want 403", method, rr.Code)
			}
		})
	}
}
