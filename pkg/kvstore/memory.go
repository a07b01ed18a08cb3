package kvstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type memoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore returns a process-local store. Values never expire.
func NewMemoryStore() Store {
	return &memoryStore{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	b := v.([]byte)
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	s.cache.Set(key, b, cache.NoExpiration)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
