// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package view holds the server-side state of a generator page: which
// phase it is in, the snippet it currently shows and how it shows it.
// Each page load of /app owns one view, addressed by an opaque UUID.
package view

import (
	"errors"
	"time"
)

// Phase is the lifecycle position of a view.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRequesting Phase = "requesting"
	PhaseReady      Phase = "ready"
	PhaseFailed     Phase = "failed"
)

// Mode selects how a ready snippet is displayed.
type Mode string

const (
	ModeCode    Mode = "code"
	ModePreview Mode = "preview"
)

// ParseMode resolves a mode from a URL segment.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCode, ModePreview:
		return Mode(s), true
	}
	return "", false
}

var (
	// ErrNotFound is returned for unknown or expired view IDs.
	ErrNotFound = errors.New("view: not found")

	// ErrBusy is returned when a submission arrives while one is pending.
	ErrBusy = errors.New("view: generation already in progress")

	// ErrNotReady is returned by operations that need a generated snippet.
	ErrNotReady = errors.New("view: no snippet generated")
)

// FailureInfo is the persistent error shown after a failed generation.
type FailureInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// State is a single view. Stores hand out copies; mutate through
// Store.Update.
type State struct {
	ID        string       `json:"id"`
	Phase     Phase        `json:"phase"`
	Attempt   uint64       `json:"attempt"`
	Snippet   string       `json:"snippet,omitempty"`
	Failure   *FailureInfo `json:"failure,omitempty"`
	Mode      Mode         `json:"mode"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Ready reports whether the view holds a snippet.
func (s *State) Ready() bool { return s.Phase == PhaseReady }

// Pending reports whether a generation is in flight.
func (s *State) Pending() bool { return s.Phase == PhaseRequesting }

func (s *State) clone() *State {
	c := *s
	if s.Failure != nil {
		f := *s.Failure
		c.Failure = &f
	}
	return &c
}
