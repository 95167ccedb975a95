package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/view"
	"github.com/rs/zerolog/log"
)

// ControllerFactory builds the controller for a new session around the
// session's clipboard.
type ControllerFactory func(id string, clipboard view.Clipboard) *view.Controller

type Session struct {
	ID         string
	Controller *view.Controller
	Clipboard  *BrowserClipboard
	lastSeen   time.Time
}

// Store keeps one view controller per browser session in memory. Sessions
// idle for longer than the TTL are dropped by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	factory  ControllerFactory
}

func NewStore(ttl time.Duration, factory ControllerFactory) *Store {
	if ttl <= 0 {
		ttl = constants.SessionTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		factory:  factory,
	}
}

// Get returns the live session for id, or a fresh one under a new id when id
// is unknown or expired. created reports which of the two happened.
func (s *Store) Get(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.sessions[id]; ok && now.Sub(existing.lastSeen) <= s.ttl {
		existing.lastSeen = now
		return existing, false
	}

	sess = &Session{
		ID:        uuid.NewString(),
		Clipboard: &BrowserClipboard{},
		lastSeen:  now,
	}
	sess.Controller = s.factory(sess.ID, sess.Clipboard)
	s.sessions[sess.ID] = sess

	log.Debug().Str("session_id", sess.ID).Msg("Session created")
	return sess, true
}

// Lookup returns the live session for id without ever creating one.
func (s *Store) Lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.sessions[id]
	if !ok || now.Sub(existing.lastSeen) > s.ttl {
		return nil, false
	}
	existing.lastSeen = now
	return existing, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many it removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constants.SessionSweepEvery
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Info().Int("removed", removed).Int("remaining", s.Len()).Msg("Expired sessions swept")
			}
		}
	}
}
