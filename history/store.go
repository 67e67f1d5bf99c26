// Package history keeps the generations of the running process.
package history

import (
	"sync"

	"ai_content_generator/generator"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 100

// Store is a capped, insertion-ordered list of generation results. When full, the oldest
// entry is dropped. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	limit   int
	entries []generator.Result
}

// NewStore creates a Store holding at most limit entries. limit < 1 means DefaultLimit.
func NewStore(limit int) *Store {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Store{limit: limit, entries: make([]generator.Result, 0, limit)}
}

// Add appends r and evicts the oldest entries beyond the limit.
func (s *Store) Add(r generator.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, r)
	if over := len(s.entries) - s.limit; over > 0 {
		s.entries = append(s.entries[:0:0], s.entries[over:]...)
	}
}

// List returns a copy of the entries, most recent first.
func (s *Store) List() []generator.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]generator.Result, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Limit returns the configured cap.
func (s *Store) Limit() int { return s.limit }

// Stats summarizes the retained entries.
type Stats struct {
	Total  int
	ByType map[generator.ContentType]int
}

// Stats counts retained entries per content type. Every supported type is present in ByType,
// so the counts always sum to Total.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Total: len(s.entries), ByType: make(map[generator.ContentType]int, len(generator.ContentTypes))}
	for _, t := range generator.ContentTypes {
		st.ByType[t] = 0
	}
	for _, e := range s.entries {
		st.ByType[e.Type]++
	}
	return st
}
