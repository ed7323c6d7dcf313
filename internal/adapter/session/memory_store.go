package session

import (
	"context"
	"sync"
	"time"

	domain "loan-backoffice/internal/domain/session"
)

// MemoryStore is a single-process store; records only leave through Delete or Prune.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]domain.Session
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]domain.Session), now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.ID] = *sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[id]
	if !ok || sess.Expired(s.now()) {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Touch(_ context.Context, sess *domain.Session, now time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[sess.ID]; !ok {
		return domain.ErrNotFound
	}
	sess.LastAccess = now
	if ttl > 0 {
		sess.ExpiresAt = now.Add(ttl)
	}
	s.data[sess.ID] = *sess
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *MemoryStore) Prune(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.data {
		if sess.Expired(now) {
			delete(s.data, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many records are held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
