// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the hosted language models
// SnapUI can generate components with (Gemini, OpenAI, Claude, Mistral).
// Each provider implements the Provider interface and reports remote
// failures as *Error, and the Registry selects the active one by name.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Provider defines the interface that all AI providers must implement.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the user's request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// factories builds each supported provider from its settings.
var factories = map[string]func(ProviderConfig) (Provider, error){
	"gemini":  func(c ProviderConfig) (Provider, error) { return newGemini(c) },
	"openai":  func(c ProviderConfig) (Provider, error) { return newOpenAI(c), nil },
	"claude":  func(c ProviderConfig) (Provider, error) { return newClaude(c), nil },
	"mistral": func(c ProviderConfig) (Provider, error) { return newMistral(c), nil },
}

// Names returns the supported provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Known reports whether name is a supported provider.
func Known(name string) bool {
	_, ok := factories[name]
	return ok
}

// ErrNoProvider is returned when the active provider was not configured.
var ErrNoProvider = errors.New("ai: active provider not configured")

// Registry holds the providers built at startup and delegates to the
// active one. It is immutable after NewRegistry and safe for concurrent use.
type Registry struct {
	providers map[string]Provider
	active    string
}

// NewRegistry builds a provider for every config with an API key. A
// provider whose client fails to build is logged and left out; the error
// is returned only when that leaves the active provider missing.
func NewRegistry(active string, configs map[string]ProviderConfig) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider), active: active}

	var activeErr error
	for name, cfg := range configs {
		build, ok := factories[name]
		if !ok || cfg.APIKey == "" {
			continue
		}
		p, err := build(cfg)
		if err != nil {
			slog.Error("ai provider init failed", "provider", name, "error", err)
			if name == active {
				activeErr = err
			}
			continue
		}
		r.providers[name] = p
	}

	if _, ok := r.providers[active]; !ok {
		if activeErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNoProvider, active, activeErr)
		}
		return nil, fmt.Errorf("%w: %q", ErrNoProvider, active)
	}
	return r, nil
}

// Generate calls the active provider's Generate method.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return r.providers[r.active].Generate(ctx, systemPrompt, userPrompt)
}

// Name reports the active provider name so a Registry can stand in for a
// single Provider.
func (r *Registry) Name() string { return r.active }

// Available returns the sorted names of the providers that were built.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
