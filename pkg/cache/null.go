package cache

import (
	"context"
	"time"
)

// NullCache drops every layout and artifact it is handed, so a Runner built
// on it recomputes each request. It is the Runner's cache when none is given.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

// Get reports a miss for every key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

// Len is always zero, mirroring [MemoryCache.Len].
func (NullCache) Len() int { return 0 }

func (NullCache) Close() error { return nil }
