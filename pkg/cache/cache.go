// Package cache provides a Redis-backed JSON cache.
//
// All helpers treat a nil client as a disabled cache: Get misses and Set is a
// no-op, so callers never need to guard on cache availability.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/upahaar/upahaar/config"
	"github.com/upahaar/upahaar/pkg/metrics"
)

var RDB *redis.Client

// Connect opens the Redis client and verifies it with a ping.
func Connect(ctx context.Context) error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	return RDB.Ping(ctx).Err()
}

// Close shuts the Redis client down.
func Close() error {
	if RDB == nil {
		return nil
	}
	return RDB.Close()
}

// Get unmarshals a cached JSON value into dest. Returns false on a miss.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set marshals value to JSON and stores it with the given TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Delete removes one or more keys.
func Delete(ctx context.Context, keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}

// FlushPrefix deletes every key matching prefix* using SCAN, so it stays safe
// on large keyspaces. Used to invalidate catalog caches after an import.
func FlushPrefix(ctx context.Context, prefix string) error {
	if RDB == nil {
		return nil
	}

	iter := RDB.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := RDB.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
