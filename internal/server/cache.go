package server

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache keeps the rendered leaderboard in Redis for a few
// seconds. Poll traffic tolerates slightly stale standings, so every client
// inside the TTL window shares one computation. A nil client disables
// caching.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

const leaderboardKey = "leaderboard:standings"

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached leaderboard body, or ok=false on a miss. Cache
// failures degrade to a miss; the leaderboard is always computable from the
// store.
func (c *LeaderboardCache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *LeaderboardCache) Set(ctx context.Context, body []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, leaderboardKey, body, c.ttl)
}

// Invalidate drops the cached standings after a mutation that changes them.
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, leaderboardKey)
}
