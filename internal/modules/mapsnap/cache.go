// README: Tile cache; in-memory session layer with optional Redis behind it.
package mapsnap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tileKeyPrefix = "mapsnap:tile:%d:%d:%d"
	// Tile imagery changes rarely; a day of reuse is plenty for one session.
	tileTTL = 24 * time.Hour
)

// TileCache layers an in-memory map (session lifetime) over an optional
// Redis client (shared across restarts). A nil Redis client disables the
// second layer.
type TileCache struct {
	mu    sync.RWMutex
	mem   map[string][]byte
	redis *redis.Client
}

func NewTileCache(rdb *redis.Client) *TileCache {
	return &TileCache{mem: make(map[string][]byte), redis: rdb}
}

func tileKey(zoom, x, y int) string {
	return fmt.Sprintf(tileKeyPrefix, zoom, x, y)
}

func (c *TileCache) Get(ctx context.Context, zoom, x, y int) ([]byte, bool) {
	key := tileKey(zoom, x, y)

	c.mu.RLock()
	raw, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return raw, true
	}

	if c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	c.mu.Lock()
	c.mem[key] = raw
	c.mu.Unlock()
	return raw, true
}

func (c *TileCache) Put(ctx context.Context, zoom, x, y int, raw []byte) {
	key := tileKey(zoom, x, y)

	c.mu.Lock()
	c.mem[key] = raw
	c.mu.Unlock()

	if c.redis != nil {
		// Best effort; a failed cache write never fails a render.
		_ = c.redis.Set(ctx, key, raw, tileTTL).Err()
	}
}
