// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SandboxPolicy is the Content-Security-Policy applied to documents built
// from generated code. It gives them an opaque origin, so their scripts
// cannot read this site's cookies or call its endpoints as the user, even
// when the document is opened outside the preview iframe.
const SandboxPolicy = "sandbox allow-scripts allow-popups allow-forms allow-modals"

// SecureHeaders adds security-related HTTP headers to every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("X-Content-Type-Options", "nosniff")

		// The preview iframe is same-origin; nobody else may frame us.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Disable the legacy XSS filter (can cause issues; CSP is preferred).
		h.Set("X-XSS-Protection", "0")

		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		next.ServeHTTP(w, r)
	})
}

// Sandboxed marks every response of the wrapped handler with SandboxPolicy.
func Sandboxed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", SandboxPolicy)
		next.ServeHTTP(w, r)
	})
}
