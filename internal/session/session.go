// Package session holds each browser session's uploaded tables and filter
// choices in memory. Nothing is persisted; a session that goes quiet for
// longer than the TTL is dropped.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"linklytics/internal/models"
)

// State is the explicit session state object every pipeline run starts
// from. It is plain data with JSON tags so it can be inspected or shipped
// whole.
type State struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`

	Posts   *models.PostsTable   `json:"posts,omitempty"`
	Metrics *models.MetricsTable `json:"metrics,omitempty"`
	Boosts  map[string]bool      `json:"boosts,omitempty"`
	Filter  models.FilterState   `json:"filter"`

	// Notices are upload-scoped messages that belong to no single table,
	// like a rejected annotation file or an ignored upload.
	Notices []string `json:"notices,omitempty"`
}

// HasData reports whether any table has been uploaded yet.
func (s *State) HasData() bool {
	return s != nil && (s.Posts != nil || s.Metrics != nil)
}

// Store keeps live sessions keyed by ID.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*State

	uploadsSeen int
}

// NewStore creates an empty store whose sessions expire ttl after their
// last request.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*State),
	}
}

// Create registers a fresh session and returns it. Expired sessions are
// swept on the same lock acquisition; the store never runs goroutines of
// its own.
func (s *Store) Create() *State {
	now := time.Now()
	st := &State{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		LastSeenAt: now,
		Boosts:     make(map[string]bool),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.sessions[st.ID] = st
	return st
}

// Get returns a snapshot of the session for id and marks it seen. The
// snapshot shares tables and maps with the stored state; Update's
// replace-wholesale rule is what keeps those safe to read afterwards.
func (s *Store) Get(id string) (*State, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	st.LastSeenAt = time.Now()
	snap := *st
	return &snap, true
}

// Update runs fn on the session under the store lock. To stay race-free
// with concurrent renders, fn must replace fields wholesale (new maps, new
// tables) instead of mutating structures a reader may hold.
func (s *Store) Update(id string, fn func(*State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return false
	}
	fn(st)
	st.LastSeenAt = time.Now()
	return true
}

// RecordUpload bumps the upload counter shown on the admin page.
func (s *Store) RecordUpload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadsSeen++
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Stats reports store counters for the admin page.
func (s *Store) Stats() (sessions, withData, uploads int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.sessions {
		if st.HasData() {
			withData++
		}
	}
	return len(s.sessions), withData, s.uploadsSeen
}

func (s *Store) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, st := range s.sessions {
		if now.Sub(st.LastSeenAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
