// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded values with a time to live.
type Cache interface {
	// Get decodes the value at key into target and reports whether it was present.
	Get(context context.Context, key string, target any) (bool, error)
	Set(context context.Context, key string, value any, ttl time.Duration) error
}

// RedisCache implements [Cache] on Redis strings.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get reads and decodes a cached value.

Returns:
  - bool: false when the key is absent or expired
  - error: Connectivity or decoding errors
*/
func (cache *RedisCache) Get(context context.Context, key string, target any) (bool, error) {
	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_cache_get_failed: %w", err)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return false, fmt.Errorf("redis_cache_decode_failed: %w", err)
	}
	return true, nil
}

func (cache *RedisCache) Set(context context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}
	return nil
}
