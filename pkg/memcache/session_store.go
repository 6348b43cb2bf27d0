// pkg/memcache/session_store.go
package mem

import (
	"context"
	"sync"
	"time"
)

// Session is the server-side state behind an admin cookie.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type SessionStore interface {
	Save(ctx context.Context, sess Session) error

	// Get returns nil without error when the session is missing or expired.
	Get(ctx context.Context, id string) (*Session, error)

	Delete(ctx context.Context, id string) error
}

type InMemorySessions struct {
	mu   sync.RWMutex
	data map[string]Session
	now  func() time.Time
}

func NewInMemorySessions() *InMemorySessions {
	return &InMemorySessions{
		data: make(map[string]Session),
		now:  time.Now,
	}
}

func (s *InMemorySessions) Save(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.ID] = sess
	return nil
}

func (s *InMemorySessions) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if sess.Expired(s.now()) {
		s.mu.Lock()
		delete(s.data, id) // cleanup expired
		s.mu.Unlock()
		return nil, nil
	}
	return &sess, nil
}

func (s *InMemorySessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
