package cache

import (
	"sync"
	"time"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryService is an in-process CacheService used when no memcached
// address is configured, and by tests.
type MemoryService struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemoryService creates an in-process cache service
func NewMemoryService() *MemoryService {
	return &MemoryService{
		items: make(map[string]memoryItem),
	}
}

func (s *MemoryService) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[key]
	if !ok || (!item.expiresAt.IsZero() && time.Now().After(item.expiresAt)) {
		return nil, ErrNotFound
	}
	return item.value, nil
}

func (s *MemoryService) Set(key string, value []byte, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	s.items[key] = memoryItem{value: value, expiresAt: expiresAt}
	return nil
}

func (s *MemoryService) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *MemoryService) Exists(key string) bool {
	_, err := s.Get(key)
	return err == nil
}
