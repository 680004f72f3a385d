package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis overrides the commands the services use. Anything else panics
// through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	getFn func(key string) (string, error)
	setFn func(key string, value interface{}, ttl time.Duration) error
	delFn func(keys ...string) (int64, error)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, err := f.getFn(key)
	return redis.NewStringResult(v, err)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", f.setFn(key, value, ttl))
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	n, err := f.delFn(keys...)
	return redis.NewIntResult(n, err)
}

// memoryRedis is a fakeRedis backed by maps, recording the TTL of every write.
type memoryRedis struct {
	*fakeRedis
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryRedis() *memoryRedis {
	m := &memoryRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
	m.fakeRedis = &fakeRedis{
		getFn: func(key string) (string, error) {
			v, ok := m.values[key]
			if !ok {
				return "", redis.Nil
			}
			return v, nil
		},
		setFn: func(key string, value interface{}, ttl time.Duration) error {
			switch v := value.(type) {
			case []byte:
				m.values[key] = string(v)
			case string:
				m.values[key] = v
			}
			m.ttls[key] = ttl
			return nil
		},
		delFn: func(keys ...string) (int64, error) {
			var n int64
			for _, k := range keys {
				if _, ok := m.values[k]; ok {
					delete(m.values, k)
					n++
				}
			}
			return n, nil
		},
	}
	return m
}
