// Package cache holds the short-lived copies of public list responses.
//
// Keys are grouped by domain prefix ("blog:", "org:") so a write can drop
// every list it may have changed with one InvalidatePrefix call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Key prefixes, one per invalidation domain.
const (
	PrefixBlog         = "blog:"
	PrefixCategories   = "categories:"
	PrefixOrganization = "org:"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value. A ttl of 0 uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// InvalidatePrefix drops every key under prefix and bumps its generation.
	InvalidatePrefix(ctx context.Context, prefix string) error
	// Generation changes every time prefix is invalidated.
	Generation(ctx context.Context, prefix string) (uint64, error)
	Close() error
}

// prefixOf returns the invalidation domain of key, up to its first colon.
func prefixOf(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i+1]
	}
	return key
}

// Fetch returns the cached JSON for key, or calls load and stores its result.
// Cache failures are logged and fall through to load. A result is not stored
// when the key's prefix was invalidated while load ran, so a read that raced
// a write cannot refill the cache with the old list.
func Fetch[T any](ctx context.Context, c Cache, key string, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}

	if raw, err := c.Get(ctx, key); err == nil {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	prefix := prefixOf(key)
	before, genErr := c.Generation(ctx, prefix)

	value, err := load()
	if err != nil {
		return value, err
	}

	if genErr != nil {
		log.Warn().Err(genErr).Str("key", key).Msg("cache generation read failed")
		return value, nil
	}
	if after, err := c.Generation(ctx, prefix); err != nil || after != before {
		return value, nil
	}

	if raw, err := json.Marshal(value); err == nil {
		if err := c.Set(ctx, key, raw, 0); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return value, nil
}

// Invalidate drops every prefix, logging failures.
func Invalidate(ctx context.Context, c Cache, prefixes ...string) {
	if c == nil {
		return
	}
	for _, prefix := range prefixes {
		if err := c.InvalidatePrefix(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
		}
	}
}

// New returns a Redis cache when redisURL is set and a memory cache otherwise.
func New(redisURL, prefix string, ttl time.Duration) (Cache, error) {
	if redisURL == "" {
		return NewMemory(ttl), nil
	}
	return NewRedis(redisURL, prefix, ttl)
}
