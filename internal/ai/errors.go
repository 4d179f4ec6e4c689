// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the provider-agnostic description of a failed model call.
// Providers translate their SDK or REST errors into it so callers can
// classify failures without knowing which backend produced them.
type Error struct {
	Provider string

	// StatusCode is the HTTP status of the failed response, or 0 when the
	// request never produced one (DNS, refused connection, cancellation).
	StatusCode int

	// Status is the canonical status string some APIs return alongside the
	// code (Gemini: "RESOURCE_EXHAUSTED", "UNAVAILABLE").
	Status string

	// Code is the machine-readable error type (OpenAI: "insufficient_quota",
	// Anthropic: "overloaded_error").
	Code string

	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(" API error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Status != "" {
		b.WriteString(" " + e.Status)
	}
	if e.Code != "" {
		b.WriteString(" [" + e.Code + "]")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// transportError wraps a failure that happened before any HTTP status was
// received. The cause stays reachable through errors.Is, so context
// cancellation and deadlines remain detectable.
func transportError(provider string, err error) *Error {
	return &Error{Provider: provider, Err: err}
}

// ErrEmptyResponse is returned when the model answered successfully but the
// answer carried no text.
var ErrEmptyResponse = errors.New("ai: empty response")
