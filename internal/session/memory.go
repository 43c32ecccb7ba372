package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. Sessions are stored encoded so that
// callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	data      []byte
	updatedAt time.Time
}

// NewMemoryStore creates a MemoryStore. A zero ttl disables expiry on read.
func NewMemoryStore(ttl time.Duration, opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      o.now,
	}
}

// Get returns the session with id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Wizard, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || s.expired(entry) {
		return nil, ErrNotFound
	}

	var w Wizard
	if err := json.Unmarshal(entry.data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &w, nil
}

// Put stores w, stamping UpdatedAt.
func (s *MemoryStore) Put(_ context.Context, w *Wizard) error {
	w.UpdatedAt = s.now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = w.UpdatedAt
	}
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", w.ID, err)
	}

	s.mu.Lock()
	s.sessions[w.ID] = memoryEntry{data: data, updatedAt: w.UpdatedAt}
	s.mu.Unlock()
	return nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Sweep removes sessions last updated before cutoff.
func (s *MemoryStore) Sweep(_ context.Context, cutoff time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, entry := range s.sessions {
		if entry.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	return s.ttl > 0 && s.now().Sub(entry.updatedAt) > s.ttl
}
