package pkg

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a JSON-serializing Redis cache. A nil *Cache (or one without a
// client) is a valid no-op cache, so callers never branch on whether Redis is
// configured. Misses and transport errors look the same to callers.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get deserializes the cached value into dest and reports whether it was found.
func (slf *Cache) Get(key string, dest any) bool {
	if slf == nil || slf.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := slf.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set stores the value under key with the cache TTL. Failures are ignored;
// the cache is an optimization, never a source of truth.
func (slf *Cache) Set(key string, value any) {
	if slf == nil || slf.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = slf.client.Set(ctx, key, data, slf.ttl).Err()
}

// CacheKey builds a namespaced key from a digest of the parts, keeping long
// prompt material out of the keyspace.
func CacheKey(namespace string, parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

// IsRedisNil returns true if the error is a redis key-not-found error.
func IsRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
