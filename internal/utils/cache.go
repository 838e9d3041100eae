package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// BalanceCacheKey is the Redis key holding the last committed balance
const BalanceCacheKey = "seamless:wallet:balance"

// BalanceCacheTTL bounds how long a cached balance may be served
const BalanceCacheTTL = 60 * time.Second

// GetCachedBalance retrieves the cached balance. The second return value
// reports whether a cached value was present.
func GetCachedBalance(ctx context.Context, rdb *redis.Client) (int64, bool, error) {
	val, err := rdb.Get(ctx, BalanceCacheKey).Result() // Get value from Redis
	if err == redis.Nil {
		return 0, false, nil // Key does not exist
	} else if err != nil {
		return 0, false, err // Other Redis error
	}
	var balance int64 // Balance value to unmarshal into
	// Unmarshal JSON into balance
	if err := json.Unmarshal([]byte(val), &balance); err != nil {
		return 0, false, err // Corrupt cache entry
	}
	return balance, true, nil // Return the cached balance
}

// SetCachedBalance caches a committed balance with the standard TTL
func SetCachedBalance(ctx context.Context, rdb *redis.Client, balance int64) error {
	b, err := json.Marshal(balance) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, BalanceCacheKey, b, BalanceCacheTTL).Err() // Set value in Redis with TTL
}

// InvalidateBalanceCache drops the cached balance after a mutation
func InvalidateBalanceCache(ctx context.Context, rdb *redis.Client) error {
	return rdb.Del(ctx, BalanceCacheKey).Err() // Delete key from Redis
}
