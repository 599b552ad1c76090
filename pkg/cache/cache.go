// Package cache stores intermediate planning results by content hash.
//
// Routing tables, planned networks and rendered artifacts are pure
// functions of their inputs, so they can be reused across runs whenever
// the inputs hash to the same key. Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries on local disk for the CLI
//   - [RedisCache] shares entries between API server replicas
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes every input that
// influences a result, and [ScopedKeyer] adds a namespace prefix so that
// several deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend
// itself failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache never stores anything. Runs with caching disabled use it.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
