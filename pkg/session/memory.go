package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore keeps sessions in process. They are lost on restart.
func NewMemoryStore() Store {
	return &memoryStore{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *memoryStore) Save(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		m.cache.Delete(s.ID)
		return nil
	}
	m.cache.Set(s.ID, *s, ttl)
	return nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (*Session, error) {
	value, found := m.cache.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	s, ok := value.(Session)
	if !ok || s.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}
