// Package cache provides JSON response caching over the redis utility.
package cache

import (
	"fmt"
	"time"

	"github.com/ecocart/ecocart/logger"
	redisutil "github.com/ecocart/ecocart/util/redis"

	"github.com/goccy/go-json"
)

const (
	TTLProducts   = 30 * time.Second
	TTLCategories = 5 * time.Minute
)

const (
	KeyCategories     = "categories:all"
	KeyProductsPrefix = "products:"
)

// GetJSON retrieves a cached value and unmarshals it into dest.
func GetJSON(key string, dest any) error {
	val, err := redisutil.Get(key)
	if err != nil {
		return err
	}
	if val == "" {
		return fmt.Errorf("empty value for key: %s", key)
	}
	return json.Unmarshal([]byte(val), dest)
}

// SetJSON marshals a value and stores it with the given TTL.
func SetJSON(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return redisutil.Set(key, string(data), expiration)
}

// GetOrSet returns the cached value for key, computing and storing it with
// fn on a miss.
func GetOrSet(key string, dest any, expiration time.Duration, fn func() (any, error)) error {
	if err := GetJSON(key, dest); err == nil {
		logger.Debugf("cache hit for key: %s", key)
		return nil
	}

	logger.Debugf("cache miss for key: %s", key)
	value, err := fn()
	if err != nil {
		return err
	}

	if err := SetJSON(key, value, expiration); err != nil {
		logger.Warningf("failed to set cache for key %s: %v", key, err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// InvalidateProducts drops all cached product listings.
func InvalidateProducts() error {
	return redisutil.DeletePattern(KeyProductsPrefix + "*")
}
