package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// JSON caches loader results as JSON in Redis. Concurrent misses on one key
// share a single loader call. A load that overlaps an Invalidate of its key
// still answers its callers but is not written back.
type JSON struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

// NewJSON instantiates the cache helper. A nil client or a non-positive ttl
// disables caching; loaders then run on every call.
func NewJSON(client *redis.Client, prefix string, ttl time.Duration) *JSON {
	return &JSON{client: client, prefix: prefix, ttl: ttl}
}

// Key composes a namespaced cache key.
func (c *JSON) Key(parts ...string) string {
	key := strings.Join(parts, ":")
	if c == nil || c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *JSON) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *JSON) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return roundTrip(value, dest)
	}
	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		gen := c.generation(key)
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if c.enabled() && c.generation(key) == gen {
			if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				return nil, err
			}
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), dest)
}

// Invalidate drops key so the next fetch reloads it, and keeps a load
// already in flight from writing its result back.
func (c *JSON) Invalidate(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.generations == nil {
		c.generations = make(map[string]uint64)
	}
	c.generations[key]++
	c.mu.Unlock()
	c.group.Forget(key)

	if !c.enabled() {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (c *JSON) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

func roundTrip(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
