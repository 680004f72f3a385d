package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL applies when Set is used without an explicit TTL
	DefaultCacheTTL = 8 * time.Hour
	// MinCacheTTL is 6 hours
	MinCacheTTL = 6 * time.Hour
	// MaxCacheTTL is 12 hours
	MaxCacheTTL = 12 * time.Hour
)

// CacheService stores JSON values in Redis with a clamped TTL.
type CacheService struct {
	rdb    redis.Cmdable
	logger *zap.Logger
}

func NewCacheService(rdb redis.Cmdable, logger *zap.Logger) *CacheService {
	return &CacheService{rdb: rdb, logger: logger}
}

// Get retrieves a value from cache. A miss is reported as (false, nil).
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, CacheKeyPrefix+key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value in cache with default TTL
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return c.SetWithTTL(ctx, key, value, DefaultCacheTTL)
}

// SetWithTTL stores a value in cache with custom TTL (clamped to 6-12 hours)
func (c *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, CacheKeyPrefix+key, jsonData, ttl).Err()
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}

// GetTranscript and SetTranscript let the cache sit in front of the transcript fetcher.
// Redis trouble is logged and treated as a miss.
func (c *CacheService) GetTranscript(ctx context.Context, videoID, language string) (string, bool) {
	var text string
	ok, err := c.Get(ctx, CacheKey("transcript", videoID+":"+language), &text)
	if err != nil {
		c.logger.Warn("transcript cache read failed", zap.String("video_id", videoID), zap.Error(err))
		return "", false
	}
	return text, ok
}

func (c *CacheService) SetTranscript(ctx context.Context, videoID, language, text string) {
	if err := c.Set(ctx, CacheKey("transcript", videoID+":"+language), text); err != nil {
		c.logger.Warn("transcript cache write failed", zap.String("video_id", videoID), zap.Error(err))
	}
}
