package liaison

import (
	"sync"
	"time"
)

// DefaultSessionTTL is how long an untouched session keeps its feed.
const DefaultSessionTTL = 30 * time.Minute

type sessionEntry struct {
	feed     *Feed
	lastSeen time.Time
}

// SessionStore owns the per-session feeds. A session is created on first use
// and discarded once idle past the TTL.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	clock    Clock
	ttl      time.Duration
	seed     func(time.Time) []Comment
}

// SessionOption customizes a SessionStore.
type SessionOption func(*SessionStore)

// WithSeed replaces the initial comments given to new sessions.
func WithSeed(seed func(time.Time) []Comment) SessionOption {
	return func(s *SessionStore) {
		s.seed = seed
	}
}

// NewSessionStore builds a store; ttl <= 0 selects DefaultSessionTTL.
func NewSessionStore(clock Clock, ttl time.Duration, opts ...SessionOption) *SessionStore {
	if clock == nil {
		clock = NewSystemClock()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionStore{
		sessions: make(map[string]*sessionEntry),
		clock:    clock,
		ttl:      ttl,
		seed:     SeedComments,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the feed for id, creating a seeded one if needed, and marks the session active.
func (s *SessionStore) Get(id string) *Feed {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		var initial []Comment
		if s.seed != nil {
			initial = s.seed(now)
		}
		entry = &sessionEntry{feed: NewFeed(initial)}
		s.sessions[id] = entry
	}
	entry.lastSeen = now
	return entry.feed
}

// Sweep discards sessions idle longer than the TTL and returns how many were removed.
// Sessions with a submission in flight or a live subscriber are kept.
func (s *SessionStore) Sweep() int {
	cutoff := s.clock.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if !entry.lastSeen.Before(cutoff) {
			continue
		}
		if entry.feed.InFlight() || entry.feed.subscriberCount() > 0 {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	return removed
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
