package redis

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a generic JSON-backed Redis cache for read model projections.
// Bind it to a specific view type T; each instance holds a Redis client, a
// key prefix and an optional TTL (pass 0 for keys that should not expire).
//
// A ViewCache without a client always misses and ignores writes, so services
// run unchanged when Redis is not configured.
type ViewCache[T any] struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
// client may be nil.
func NewViewCache[T any](client *goredis.Client, prefix string, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl}
}

func (c *ViewCache[T]) enabled() bool {
	return c != nil && c.client != nil
}

// Key builds the cache key for a numeric record id.
func (c *ViewCache[T]) Key(id int64) string {
	return c.prefix + strconv.FormatInt(id, 10)
}

// Get retrieves and unmarshals the value cached for id.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, id int64) (*T, bool) {
	if !c.enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.Key(id)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Printf("ViewCache: read error for key %s: %v", c.Key(id), err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it under id.
// Errors are logged rather than returned: a failed cache write is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, id int64, value *T) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("ViewCache: marshal error for key %s: %v", c.Key(id), err)
		return
	}
	if err := c.client.Set(ctx, c.Key(id), data, c.ttl).Err(); err != nil {
		log.Printf("ViewCache: write error for key %s: %v", c.Key(id), err)
	}
}

// Delete removes the value cached for id.
func (c *ViewCache[T]) Delete(ctx context.Context, id int64) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, c.Key(id)).Err(); err != nil {
		log.Printf("ViewCache: delete error for key %s: %v", c.Key(id), err)
	}
}
