package cache

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or expired
var ErrNotFound = errors.New("cache: key not found")

// CacheService is the shared key/value contract used for crawl bookkeeping,
// mainly source block keys set after a board rejects the crawler.
type CacheService interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, expiration time.Duration) error
	Delete(key string) error
	Exists(key string) bool
}
