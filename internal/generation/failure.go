// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"context"
	"errors"

	"snapui/internal/ai"
)

// Kind classifies why a generation attempt failed.
type Kind int

const (
	UnknownFailure Kind = iota
	EmptyInput
	MissingTarget
	TooLong
	Timeout
	EmptyResponse
	QuotaExhausted
	ServiceUnavailable
)

var kindNames = map[Kind]string{
	UnknownFailure:     "unknown_failure",
	EmptyInput:         "empty_input",
	MissingTarget:      "missing_target",
	TooLong:            "too_long",
	Timeout:            "timeout",
	EmptyResponse:      "empty_response",
	QuotaExhausted:     "quota_exhausted",
	ServiceUnavailable: "service_unavailable",
}

var kindMessages = map[Kind]string{
	EmptyInput:         "Please describe your component",
	MissingTarget:      "Please select a framework",
	TooLong:            "Prompt is too long (max 1000 characters)",
	Timeout:            "Request timed out. Please try again.",
	QuotaExhausted:     "Daily SnapUI limit is reached. Please try again later.",
	ServiceUnavailable: "Server is busy right now. Please try again later.",
}

// String returns the snake_case name used in logs and metric labels.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return kindNames[UnknownFailure]
}

// Message returns the user-facing text for the failure.
func (k Kind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return "Failed to generate UI. Please try again."
}

// Local reports whether the failure was detected before any network call.
func (k Kind) Local() bool {
	return k == EmptyInput || k == MissingTarget || k == TooLong
}

// Failure is the error returned by Generate for every unsuccessful attempt.
type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return "generation " + f.Kind.String() + ": " + f.Err.Error()
	}
	return "generation " + f.Kind.String()
}

func (f *Failure) Unwrap() error { return f.Err }

// Message returns the user-facing text for the failure.
func (f *Failure) Message() string { return f.Kind.Message() }

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Transport metadata → failure kind. Canonical status strings are checked
// first, then error codes, then the bare HTTP status.
var (
	statusTextKinds = map[string]Kind{
		"RESOURCE_EXHAUSTED": QuotaExhausted,
		"UNAVAILABLE":        ServiceUnavailable,
	}
	errorCodeKinds = map[string]Kind{
		"rate_limit_exceeded": QuotaExhausted,
		"insufficient_quota":  QuotaExhausted,
		"rate_limit_error":    QuotaExhausted,
		"overloaded_error":    ServiceUnavailable,
	}
	httpStatusKinds = map[int]Kind{
		429: QuotaExhausted,
		503: ServiceUnavailable,
		529: ServiceUnavailable,
	}
)

// classify maps a provider error to a Kind.
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	if errors.Is(err, ai.ErrEmptyResponse) {
		return EmptyResponse
	}

	var aiErr *ai.Error
	if !errors.As(err, &aiErr) {
		return UnknownFailure
	}
	if k, ok := statusTextKinds[aiErr.Status]; ok {
		return k
	}
	if k, ok := errorCodeKinds[aiErr.Code]; ok {
		return k
	}
	if k, ok := httpStatusKinds[aiErr.StatusCode]; ok {
		return k
	}
	return UnknownFailure
}
