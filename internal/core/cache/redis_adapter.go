package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter implements IndexedCache using Redis strings, sorted sets and Lua scripts.
type RedisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter creates a new Redis cache adapter.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewRedisAdapter(redisURL string) (*RedisAdapter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return &RedisAdapter{client: redis.NewClient(opts)}, nil
}

// Get retrieves a value from Redis by key.
func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value in Redis with the specified TTL.
func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes keys from Redis.
func (r *RedisAdapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete %d keys: %w", len(keys), err)
	}
	return nil
}

// setIndexedScript indexes before writing so a failed ZADD aborts the script
// and never leaves an unindexed value behind.
var setIndexedScript = redis.NewScript(`
redis.call('ZADD', KEYS[1], ARGV[2], ARGV[3])
redis.call('SET', ARGV[1] .. ARGV[3], ARGV[4])
return 1
`)

// deleteIndexedBelowScript ranges, deletes and unindexes in one step, so a
// concurrent re-save either lands before (and is re-scored out of range) or after.
var deleteIndexedBelowScript = redis.NewScript(`
local members = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', '(' .. ARGV[1], 'LIMIT', 0, ARGV[2])
for _, member in ipairs(members) do
	redis.call('DEL', ARGV[3] .. member)
end
if #members > 0 then
	redis.call('ZREM', KEYS[1], unpack(members))
end
return members
`)

// SetIndexed writes the value and its index member atomically.
func (r *RedisAdapter) SetIndexed(ctx context.Context, index, keyPrefix, member string, value []byte, score float64) error {
	err := setIndexedScript.Run(ctx, r.client, []string{index},
		keyPrefix, strconv.FormatFloat(score, 'f', -1, 64), member, value).Err()
	if err != nil {
		return fmt.Errorf("failed to set indexed key %s%s: %w", keyPrefix, member, err)
	}
	return nil
}

// DeleteIndexedBelow removes the lowest scored members under max and their values, capped at limit.
func (r *RedisAdapter) DeleteIndexedBelow(ctx context.Context, index, keyPrefix string, max float64, limit int64) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	members, err := deleteIndexedBelowScript.Run(ctx, r.client, []string{index},
		strconv.FormatFloat(max, 'f', -1, 64), limit, keyPrefix).StringSlice()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to delete from index %s: %w", index, err)
	}
	return members, nil
}

// Ping checks if Redis is reachable.
func (r *RedisAdapter) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
