// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generation turns a component description into an HTML snippet.
// It validates the request locally, sends one prompt to the configured
// model under a bounded wait, and maps every outcome onto either a Result
// or a *Failure whose Kind the caller can present to the user.
package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"snapui/internal/ai"
	"snapui/internal/extract"
	"snapui/internal/metrics"
)

const (
	// MaxDescriptionLen is the longest accepted description, in characters.
	MaxDescriptionLen = 1000

	// DefaultTimeout bounds the wait for the remote model.
	DefaultTimeout = 20 * time.Second

	// FormatHTML is the only snippet format produced.
	FormatHTML = "text/html"
)

// Request is one generation request as submitted by the user.
type Request struct {
	Description string
	Stack       Stack
}

// Result is a successful generation.
type Result struct {
	Snippet string
	Format  string
}

// Client issues generation requests against a single provider.
type Client struct {
	provider ai.Provider
	timeout  time.Duration
}

// New creates a Client. A non-positive timeout selects DefaultTimeout.
func New(provider ai.Provider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{provider: provider, timeout: timeout}
}

// Timeout returns the bound applied to each remote call.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Validate checks the local preconditions of req. It returns nil when the
// request may be sent.
func Validate(req Request) *Failure {
	if strings.TrimSpace(req.Description) == "" {
		return &Failure{Kind: EmptyInput}
	}
	if req.Stack == "" {
		return &Failure{Kind: MissingTarget}
	}
	if utf8.RuneCountInString(req.Description) > MaxDescriptionLen {
		return &Failure{Kind: TooLong}
	}
	return nil
}

type reply struct {
	text string
	err  error
}

// Generate validates req, asks the provider for a component and extracts the
// snippet from its answer. Every failure is returned as a *Failure.
//
// The provider call runs under its own deadline. When the deadline passes
// first, Generate returns a Timeout failure immediately; whatever the call
// produces later is dropped.
func (c *Client) Generate(ctx context.Context, req Request) (Result, error) {
	if f := Validate(req); f != nil {
		metrics.ObserveGeneration(c.provider.Name(), f.Kind.String(), 0)
		return Result{}, f
	}

	system, user := BuildPrompt(req)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Buffered so the goroutine can always hand off and exit, even after
	// Generate has stopped listening.
	done := make(chan reply, 1)
	start := time.Now()
	go func() {
		text, err := c.provider.Generate(ctx, system, user)
		done <- reply{text: text, err: err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-ctx.Done():
		r = reply{err: ctx.Err()}
	}
	elapsed := time.Since(start)

	res, err := c.interpret(ctx, r)
	outcome := "success"
	if f, ok := AsFailure(err); ok {
		outcome = f.Kind.String()
		slog.Warn("generation failed",
			"provider", c.provider.Name(),
			"kind", outcome,
			"duration", elapsed.String(),
			"error", f.Err,
		)
	} else {
		slog.Info("generation succeeded",
			"provider", c.provider.Name(),
			"stack", string(req.Stack),
			"duration", elapsed.String(),
			"snippet_bytes", len(res.Snippet),
		)
	}
	metrics.ObserveGeneration(c.provider.Name(), outcome, elapsed)

	return res, err
}

// interpret turns the provider reply into a Result or a *Failure. Our own
// deadline is checked before the provider error so a timeout is reported
// once, as Timeout, whatever error the cancelled call produced.
func (c *Client) interpret(ctx context.Context, r reply) (Result, error) {
	if r.err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, &Failure{Kind: Timeout, Err: r.err}
		}
		if ctx.Err() != nil {
			return Result{}, &Failure{Kind: UnknownFailure, Err: r.err}
		}
		return Result{}, &Failure{Kind: classify(r.err), Err: r.err}
	}

	if strings.TrimSpace(r.text) == "" {
		return Result{}, &Failure{Kind: EmptyResponse, Err: ai.ErrEmptyResponse}
	}

	return Result{Snippet: extract.Code(r.text), Format: FormatHTML}, nil
}
