package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheService implements CacheService on top of memcached.
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a memcached-backed cache service
func NewMemcacheService(addr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(addr),
	}
}

func (s *MemcacheService) Get(key string) ([]byte, error) {
	item, err := s.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

func (s *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return s.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

func (s *MemcacheService) Delete(key string) error {
	err := s.client.Delete(key)
	if err == memcache.ErrCacheMiss {
		return nil
	}
	return err
}

func (s *MemcacheService) Exists(key string) bool {
	_, err := s.client.Get(key)
	return err == nil
}
