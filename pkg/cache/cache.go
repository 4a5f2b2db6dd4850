// Package cache provides the result cache shared by the CLI, the HTTP API and
// the MCP server.
//
// # Overview
//
// Analyses are deterministic functions of the normalized expression, so
// both successful and failed results can be cached. Rendered expression
// trees are cached as well.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for long-running servers
//
// Cache keys are produced by a [Keyer]. [DefaultKeyer] hashes the key
// components with SHA-256; [ScopedKeyer] adds a namespace prefix.
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	keyer := cache.NewDefaultKeyer()
//
//	key := keyer.ResultKey("3*n^2 + 2^n")
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // decode data
//	}
//	_ = c.Set(ctx, key, data, cache.TTLResult)
package cache

import (
	"context"
	"time"
)

// TTLs for cached values. Results only change when the analyzer changes,
// which is covered by the version in [DefaultKeyer] keys.
const (
	TTLResult = 30 * 24 * time.Hour
	TTLTree   = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with hit == false and a nil error. A ttl of zero or
// less means the entry never expires. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
