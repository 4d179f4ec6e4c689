// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"snapui/internal/generation"
)

// Client is the part of generation.Client the Generator needs.
type Client interface {
	Generate(ctx context.Context, req generation.Request) (generation.Result, error)
}

// DefaultStaleAfter is how long a view may sit in PhaseRequesting before a
// new submission is allowed to take it over. It only matters when the
// process that owned the request died before writing the outcome.
const DefaultStaleAfter = 2 * time.Minute

// errStale marks a completion whose attempt has been superseded.
var errStale = errors.New("view: stale completion")

// Generator drives the view lifecycle around a generation client.
type Generator struct {
	store      Store
	client     Client
	staleAfter time.Duration
	now        func() time.Time
}

// NewGenerator creates a Generator over store and client.
func NewGenerator(store Store, client Client) *Generator {
	return &Generator{
		store:      store,
		client:     client,
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
	}
}

// Open creates a fresh idle view.
func (g *Generator) Open(ctx context.Context) (*State, error) {
	s := &State{
		ID:        uuid.NewString(),
		Phase:     PhaseIdle,
		Mode:      ModeCode,
		UpdatedAt: g.now(),
	}
	if err := g.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("open view: %w", err)
	}
	return s, nil
}

// Load returns the view with the given ID.
func (g *Generator) Load(ctx context.Context, id string) (*State, error) {
	return g.store.Get(ctx, id)
}

// Submit runs one generation for the view.
//
// A request that fails local validation returns the unchanged view and the
// *generation.Failure. Otherwise the view enters PhaseRequesting, the
// client is called, and the outcome is written back only if no newer
// attempt replaced this one. Remote failures are returned as the
// *generation.Failure alongside the failed view.
func (g *Generator) Submit(ctx context.Context, id string, req generation.Request) (*State, error) {
	if f := generation.Validate(req); f != nil {
		s, err := g.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return s, f
	}

	var attempt uint64
	s, err := g.store.Update(ctx, id, func(s *State) error {
		if s.Phase == PhaseRequesting && g.now().Sub(s.UpdatedAt) < g.staleAfter {
			return ErrBusy
		}
		s.Phase = PhaseRequesting
		s.Attempt++
		s.Snippet = ""
		s.Failure = nil
		s.Mode = ModeCode
		s.UpdatedAt = g.now()
		attempt = s.Attempt
		return nil
	})
	if err != nil {
		return s, err
	}

	res, genErr := g.client.Generate(ctx, req)

	// The outcome is recorded even if the caller went away.
	s, err = g.store.Update(context.WithoutCancel(ctx), id, func(s *State) error {
		if s.Phase != PhaseRequesting || s.Attempt != attempt {
			return errStale
		}
		s.UpdatedAt = g.now()
		if genErr != nil {
			s.Phase = PhaseFailed
			s.Failure = failureInfo(genErr)
			return nil
		}
		s.Phase = PhaseReady
		s.Snippet = res.Snippet
		return nil
	})
	if errors.Is(err, errStale) {
		slog.Debug("dropping stale generation result", "view", id, "attempt", attempt)
		return s, genErr
	}
	if err != nil {
		return nil, fmt.Errorf("record generation: %w", err)
	}
	return s, genErr
}

// SetMode switches a ready view between code and preview.
func (g *Generator) SetMode(ctx context.Context, id string, m Mode) (*State, error) {
	return g.store.Update(ctx, id, func(s *State) error {
		if s.Phase != PhaseReady {
			return ErrNotReady
		}
		s.Mode = m
		return nil
	})
}

// Snippet returns the snippet held by the view, empty unless it is ready.
func (g *Generator) Snippet(ctx context.Context, id string) (string, error) {
	s, err := g.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if s.Phase != PhaseReady {
		return "", nil
	}
	return s.Snippet, nil
}

func failureInfo(err error) *FailureInfo {
	if f, ok := generation.AsFailure(err); ok {
		return &FailureInfo{Kind: f.Kind.String(), Message: f.Message()}
	}
	return &FailureInfo{
		Kind:    generation.UnknownFailure.String(),
		Message: generation.UnknownFailure.Message(),
	}
}
