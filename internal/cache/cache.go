// Package cache stores serialized gRPC responses. Two implementations are
// provided: an in-process LRU for a single instance and Redis for
// instances that share a cache.
//
// Values are stored as JSON, so a hit always yields a fresh copy that
// callers may modify.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownType is returned by New for an unsupported cache type.
var ErrUnknownType = errors.New("unknown cache type")

// Cache is a response cache. Get reports whether key was found and, if so,
// decodes the stored value into dst.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// Key derives a cache key from an RPC method and its request.
func Key(method string, req any) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha256.Sum256(b)
	return method + ":" + hex.EncodeToString(sum[:]), nil
}

// Options selects and sizes a cache.
type Options struct {
	Type          string // "lru", "redis" or "none"
	Size          int
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
}

// New builds the cache described by o. A "none" type yields a nil Cache.
func New(ctx context.Context, o Options) (Cache, error) {
	switch o.Type {
	case "none":
		return nil, nil
	case "", "lru":
		c, err := NewLRU(o.Size, o.TTL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "redis":
		rdb, err := NewRedisClient(ctx, o.RedisAddr, o.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", o.RedisAddr, err)
		}
		return NewRedis(rdb, o.TTL, ""), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, o.Type)
	}
}
