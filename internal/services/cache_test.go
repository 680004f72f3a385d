package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTranscriptCacheRoundTrip(t *testing.T) {
	rdb := newMemoryRedis()
	cache := NewCacheService(rdb, zap.NewNop())
	ctx := context.Background()

	_, ok := cache.GetTranscript(ctx, "abc123", "en")
	assert.False(t, ok)

	cache.SetTranscript(ctx, "abc123", "en", "hello world")

	text, ok := cache.GetTranscript(ctx, "abc123", "en")
	require.True(t, ok)
	assert.Equal(t, "hello world", text)

	_, ok = cache.GetTranscript(ctx, "abc123", "de")
	assert.False(t, ok)

	assert.Equal(t, DefaultCacheTTL, rdb.ttls[CacheKeyPrefix+"transcript:abc123:en"])
}

func TestCacheTTLIsClamped(t *testing.T) {
	rdb := newMemoryRedis()
	cache := NewCacheService(rdb, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.SetWithTTL(ctx, "short", 1, time.Minute))
	require.NoError(t, cache.SetWithTTL(ctx, "long", 1, 48*time.Hour))

	assert.Equal(t, MinCacheTTL, rdb.ttls[CacheKeyPrefix+"short"])
	assert.Equal(t, MaxCacheTTL, rdb.ttls[CacheKeyPrefix+"long"])
}

func TestTranscriptCacheFailuresAreMisses(t *testing.T) {
	rdb := &fakeRedis{
		getFn: func(string) (string, error) { return "", errors.New("connection refused") },
		setFn: func(string, interface{}, time.Duration) error { return errors.New("connection refused") },
	}
	cache := NewCacheService(rdb, zap.NewNop())
	ctx := context.Background()

	_, ok := cache.GetTranscript(ctx, "abc123", "en")
	assert.False(t, ok)
	assert.NotPanics(t, func() { cache.SetTranscript(ctx, "abc123", "en", "hello") })
}

func TestCacheGetUndecodableValue(t *testing.T) {
	rdb := newMemoryRedis()
	rdb.values[CacheKeyPrefix+"transcript:abc123:en"] = "not json"
	cache := NewCacheService(rdb, zap.NewNop())

	_, ok := cache.GetTranscript(context.Background(), "abc123", "en")
	assert.False(t, ok)
}
