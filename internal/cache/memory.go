package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// memoryStore — кэш в памяти процесса. Используется, когда Redis не
// сконфигурирован (локальная разработка, единственный инстанс).
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore создаёт пустой кэш в памяти.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(_ context.Context, key string) (*Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	// Ленивое истечение: чистим при обращении.
	if !me.expiresAt.IsZero() && time.Now().After(me.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}

	e := me.entry
	return &e, true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, e *Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me := memoryEntry{entry: *e}
	if ttl > 0 {
		me.expiresAt = time.Now().Add(ttl)
	}

	s.entries[key] = me
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *memoryStore) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}

	return nil
}

func (s *memoryStore) Close() error { return nil }
