package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	trendingHashtagsKey = "trending:hashtags"
	suggestedUsersKey   = "trending:suggested-users"
	trendingCacheTTL    = time.Minute
)

// TrendingCache is a short-TTL JSON cache in front of the trending queries.
// A nil cache (redis unavailable) is valid; every method degrades to a miss.
type TrendingCache struct {
	rdb *redis.Client
}

func NewTrendingCache(rdb *redis.Client) *TrendingCache {
	return &TrendingCache{rdb: rdb}
}

func (tc *TrendingCache) getJSON(ctx context.Context, key string, dest interface{}) bool {
	if tc == nil || tc.rdb == nil {
		return false
	}

	value, err := tc.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(value), dest) == nil
}

func (tc *TrendingCache) setJSON(ctx context.Context, key string, value interface{}) error {
	if tc == nil || tc.rdb == nil {
		return nil
	}

	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return tc.rdb.Set(ctx, key, valueJSON, trendingCacheTTL).Err()
}

func (tc *TrendingCache) GetHashtags(ctx context.Context, dest interface{}) bool {
	return tc.getJSON(ctx, trendingHashtagsKey, dest)
}

func (tc *TrendingCache) SetHashtags(ctx context.Context, value interface{}) error {
	return tc.setJSON(ctx, trendingHashtagsKey, value)
}

func (tc *TrendingCache) GetSuggestedUsers(ctx context.Context, dest interface{}) bool {
	return tc.getJSON(ctx, suggestedUsersKey, dest)
}

func (tc *TrendingCache) SetSuggestedUsers(ctx context.Context, value interface{}) error {
	return tc.setJSON(ctx, suggestedUsersKey, value)
}
