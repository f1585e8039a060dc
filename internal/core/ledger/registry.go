package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/google/uuid"
)

// Registry holds live planner sessions and evicts idle ones.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open starts a session over items for the given user and organization.
func (r *Registry) Open(userID, organizationID string, items []domain.ScheduleItem) *Session {
	s := NewSession(uuid.NewString(), userID, organizationID, items)
	s.lastUsed = r.now()

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the session if it exists, belongs to userID and has not expired.
func (r *Registry) Get(sessionID, userID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok || s.UserID != userID {
		return nil, apperrors.NewNotFoundError("planner session " + sessionID)
	}
	if r.ttl > 0 && s.idleSince(r.now()) > r.ttl {
		r.Close(sessionID, userID)
		return nil, apperrors.NewNotFoundError("planner session " + sessionID + " expired")
	}
	return s, nil
}

// Close discards a session and its history.
func (r *Registry) Close(sessionID, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return false
	}
	delete(r.sessions, sessionID)
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many were removed.
// Idleness is read without the registry lock since a session stays locked during store calls.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	now := r.now()

	r.mu.RLock()
	live := make(map[string]*Session, len(r.sessions))
	for id, s := range r.sessions {
		live[id] = s
	}
	r.mu.RUnlock()

	var idle []string
	for id, s := range live {
		if s.idleSince(now) > r.ttl {
			idle = append(idle, id)
		}
	}
	if len(idle) == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for _, id := range idle {
		if r.sessions[id] == live[id] {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
