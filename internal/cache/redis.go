package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores entries in Redis under namespace with a fixed ttl.
type Redis struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewRedis creates a Redis cache. A zero ttl defaults to 5 minutes and an
// empty namespace to "mbdata".
func NewRedis(rdb *redis.Client, ttl time.Duration, namespace string) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "mbdata"
	}
	return &Redis{rdb: rdb, ttl: ttl, namespace: namespace}
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *Redis) key(k string) string { return c.namespace + ":" + k }

func (c *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Drop the corrupted entry.
		_ = c.rdb.Del(ctx, c.key(key)).Err()
		return false, err
	}
	return true, nil
}

func (c *Redis) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), b, c.ttl).Err()
}
