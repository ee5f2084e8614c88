// Package redis wraps a go-redis client with an in-memory fallback so
// callers work identically whether or not a Redis server is configured.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ecocart/ecocart/logger"

	goredis "github.com/redis/go-redis/v9"
)

var (
	client  *goredis.Client
	ctx     = context.Background()
	enabled = false

	fallbackMu    sync.RWMutex
	fallbackStore = make(map[string]fallbackEntry)
)

type fallbackEntry struct {
	value      string
	expiration time.Time
}

// Init connects to Redis at addr. An empty addr or a failed ping leaves the
// package in fallback mode; callers are unaffected.
func Init(addr, password string, db int) error {
	if addr == "" {
		enabled = false
		logger.Info("Redis not configured, using in-memory fallback")
		return nil
	}

	c := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		enabled = false
		logger.Warningf("Redis unreachable at %s, using in-memory fallback: %v", addr, err)
		return nil
	}

	client = c
	enabled = true
	logger.Info("Redis connected at ", addr)
	return nil
}

// IsEnabled reports whether a real Redis backend is in use.
func IsEnabled() bool {
	return enabled
}

// Client returns the underlying go-redis client, nil in fallback mode.
func Client() *goredis.Client {
	return client
}

// Close releases the Redis connection if one was established.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

func (e fallbackEntry) expired() bool {
	return !e.expiration.IsZero() && time.Now().After(e.expiration)
}

// Set stores a key-value pair with expiration.
func Set(key string, value string, expiration time.Duration) error {
	if enabled {
		return client.Set(ctx, key, value, expiration).Err()
	}

	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	entry := fallbackEntry{value: value}
	if expiration > 0 {
		entry.expiration = time.Now().Add(expiration)
	}
	fallbackStore[key] = entry
	return nil
}

// Get retrieves a value by key. Missing or expired keys return an error.
func Get(key string) (string, error) {
	if enabled {
		return client.Get(ctx, key).Result()
	}

	fallbackMu.RLock()
	entry, ok := fallbackStore[key]
	fallbackMu.RUnlock()
	if !ok || entry.expired() {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return entry.value, nil
}

// Incr atomically increments the integer stored at key, creating it at 1.
func Incr(key string) (int64, error) {
	if enabled {
		return client.Incr(ctx, key).Result()
	}

	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	entry, ok := fallbackStore[key]
	var n int64
	if ok && !entry.expired() {
		n, _ = strconv.ParseInt(entry.value, 10, 64)
	}
	n++
	fallbackStore[key] = fallbackEntry{value: strconv.FormatInt(n, 10), expiration: entry.expiration}
	return n, nil
}

// Expire sets a key's time to live.
func Expire(key string, expiration time.Duration) error {
	if enabled {
		return client.Expire(ctx, key, expiration).Err()
	}

	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	if entry, ok := fallbackStore[key]; ok {
		entry.expiration = time.Now().Add(expiration)
		fallbackStore[key] = entry
	}
	return nil
}

// Del removes keys.
func Del(keys ...string) error {
	if enabled {
		return client.Del(ctx, keys...).Err()
	}

	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	for _, key := range keys {
		delete(fallbackStore, key)
	}
	return nil
}

// DeletePattern removes all keys matching a glob-style pattern.
func DeletePattern(pattern string) error {
	if enabled {
		iter := client.Scan(ctx, 0, pattern, 0).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return client.Del(ctx, keys...).Err()
	}

	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	for key := range fallbackStore {
		if matchPattern(pattern, key) {
			delete(fallbackStore, key)
		}
	}
	return nil
}

// matchPattern supports the single trailing-star form used by cache keys.
func matchPattern(pattern, key string) bool {
	if pattern == key {
		return true
	}
	if n := len(pattern); n > 0 && pattern[n-1] == '*' {
		prefix := pattern[:n-1]
		return len(key) >= len(prefix) && key[:len(prefix)] == prefix
	}
	return false
}
