// Package store holds short-lived byte values keyed by string, used by the relay to
// cache upstream responses.
package store

import (
	"context"
	"time"
)

// ByteStore is a TTL key-value cache.
type ByteStore interface {
	// Get returns the value and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
