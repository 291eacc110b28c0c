package repository

import "time"

// CacheRepository is a string key-value store with per-entry expiry.
// A zero ttl means the entry never expires.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration) error
}
