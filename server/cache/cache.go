// Package cache stores LLM completions keyed by a hash of the prompt so
// repeated questions skip the provider.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cheriki-dz/cheriki/config"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a string store with a fixed per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key hashes the given parts into a stable cache key. Parts are length
// prefixed so ("ab","c") and ("a","bc") differ.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s|", len(p), p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg. It returns nil, nil when caching
// is disabled.
func New(cfg config.CacheConfig) (Cache, error) {
	if !cfg.Enable {
		return nil, nil
	}
	switch cfg.Type {
	case "memory":
		return NewMemory(cfg.MaxSize, cfg.TTL), nil
	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis cache enabled but no address configured")
		}
		r, err := NewRedis(*cfg.Redis, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Type)
	}
}
