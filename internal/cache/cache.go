// Package cache provides the TTL cache used to shield external market data
// providers from repeated requests.
package cache

import "time"

// Cache stores values under string keys with a per-entry time to live.
type Cache interface {
	// Get returns the cached value for key and whether a live entry exists.
	Get(key string) (interface{}, bool)
	// GetStale returns the value even if its TTL has lapsed, for serving
	// stale data when every provider is down.
	GetStale(key string) (interface{}, bool)
	// Put stores value under key for ttl.
	Put(key string, value interface{}, ttl time.Duration)
	// Delete removes the entry for key if present.
	Delete(key string)
}
