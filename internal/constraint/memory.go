// Package constraint is the irreversible constraint memory: deny-rules
// learned from catastrophic events, shared across every episode of a
// run. Entries are created once and never removed or weakened: there is
// deliberately no delete, no expiry and no reset on this type.
package constraint

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one learned deny-rule. Immutable after insert.
type Entry struct {
	ID               string    `json:"id"`
	EnvironmentID    string    `json:"environment_id"`
	Pattern          string    `json:"pattern"`
	CreatedAtEpisode int       `json:"created_at_episode"`
	OriginEventID    string    `json:"origin_event_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// Memory is the single authoritative constraint store for a run.
// Reads are concurrent; inserts are linearizable and idempotent, keyed
// by normalized pattern, so two threads observing the same catastrophe
// produce one entry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*Entry)}
}

// Insert records a constraint for a normalized pattern. If the pattern
// is already constrained the existing entry is returned and created is
// false. First writer wins.
func (m *Memory) Insert(envID, pattern string, episode int, originEventID string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[pattern]; ok {
		return *e, false
	}

	e := &Entry{
		ID:               uuid.NewString(),
		EnvironmentID:    envID,
		Pattern:          pattern,
		CreatedAtEpisode: episode,
		OriginEventID:    originEventID,
		CreatedAt:        time.Now().UTC(),
	}
	m.entries[pattern] = e
	m.order = append(m.order, pattern)
	return *e, true
}

// Match returns the entry for a normalized pattern, if constrained.
func (m *Memory) Match(pattern string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.entries[pattern]; ok {
		return *e, true
	}
	return Entry{}, false
}

// Entries returns a snapshot in insertion order.
func (m *Memory) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, 0, len(m.order))
	for _, p := range m.order {
		out = append(out, *m.entries[p])
	}
	return out
}

// Len returns the number of constrained patterns.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
