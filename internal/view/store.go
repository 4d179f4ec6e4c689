// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long an untouched view is kept.
const DefaultTTL = 30 * time.Minute

// Store persists view state.
type Store interface {
	// Create stores a new view. The ID must be unused.
	Create(ctx context.Context, s *State) error

	// Get returns a copy of the view or ErrNotFound.
	Get(ctx context.Context, id string) (*State, error)

	// Update applies fn to the current state atomically and stores the
	// result. If fn returns an error nothing is written and Update returns
	// the unchanged state along with that error.
	Update(ctx context.Context, id string, fn func(*State) error) (*State, error)
}

type memoryEntry struct {
	state   *State
	expires time.Time
}

// MemoryStore keeps views in process memory. Entries expire ttl after
// their last write and are swept by a background goroutine.
type MemoryStore struct {
	mu     sync.Mutex
	views  map[string]memoryEntry
	ttl    time.Duration
	stopCh chan struct{}
	once   sync.Once
}

// NewMemoryStore creates a MemoryStore and starts its janitor. Call Close
// to stop it.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &MemoryStore{
		views:  make(map[string]memoryEntry),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}

	interval := ttl / 2
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep(time.Now())
			case <-m.stopCh:
				return
			}
		}
	}()

	return m
}

// Close stops the janitor goroutine.
func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.stopCh) })
	return nil
}

// Len returns the number of live views.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}

func (m *MemoryStore) Create(_ context.Context, s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[s.ID] = memoryEntry{state: s.clone(), expires: time.Now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(id)
	if !ok {
		return nil, ErrNotFound
	}
	return e.state.clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*State) error) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(id)
	if !ok {
		return nil, ErrNotFound
	}

	next := e.state.clone()
	if err := fn(next); err != nil {
		return e.state.clone(), err
	}
	m.views[id] = memoryEntry{state: next, expires: time.Now().Add(m.ttl)}
	return next.clone(), nil
}

// live returns the entry for id if it has not expired. Caller holds mu.
func (m *MemoryStore) live(id string) (memoryEntry, bool) {
	e, ok := m.views[id]
	if !ok {
		return memoryEntry{}, false
	}
	if time.Now().After(e.expires) {
		delete(m.views, id)
		return memoryEntry{}, false
	}
	return e, true
}

// sweep removes entries that expired before now.
func (m *MemoryStore) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.views {
		if now.After(e.expires) {
			delete(m.views, id)
		}
	}
}
