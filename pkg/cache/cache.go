// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// A [Cache] is a byte store with per-entry TTLs. Keys come from a [Keyer],
// which hashes the input together with every option that affects the output,
// so equal requests share entries and different ones never collide.
//
// Two implementations are provided:
//
//   - [MemoryCache]: a bounded in-process store for the CLI and the API server
//   - [NullCache]: stores nothing, for tests or when caching is disabled
//
// # Keys
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(treeJSON), cache.LayoutKeyOpts{Algorithm: "mindmap"})
//
// [NewScopedKeyer] prefixes every key, which keeps entries written by
// different releases apart.
package cache

import (
	"context"
	"time"
)

// TTLs used by the pipeline.
const (
	LayoutTTL   = 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte store with expiring entries. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
