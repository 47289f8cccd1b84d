package cache

import (
	"context"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type lruEntry struct {
	data    []byte
	expires time.Time
}

// LRU is an in-memory cache that evicts the least recently used entry
// once size is reached. Entries older than ttl are treated as misses; a
// zero ttl keeps entries until they are evicted.
type LRU struct {
	entries *lru.Cache
	ttl     time.Duration
	now     func() time.Time
}

// NewLRU creates an LRU holding at most size entries.
func NewLRU(size int, ttl time.Duration) (*LRU, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRU{entries: c, ttl: ttl, now: time.Now}, nil
}

func (c *LRU) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.entries.Get(key)
	if !ok {
		return false, nil
	}
	e := v.(lruEntry)
	if !e.expires.IsZero() && c.now().After(e.expires) {
		c.entries.Remove(key)
		return false, nil
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		c.entries.Remove(key)
		return false, err
	}
	return true, nil
}

func (c *LRU) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e := lruEntry{data: b}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.entries.Add(key, e)
	return nil
}

// Len is the number of cached entries, expired ones included.
func (c *LRU) Len() int { return c.entries.Len() }
