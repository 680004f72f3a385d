package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
	"github.com/AnshRaj112/ytsummary-backend/internal/session"
)

func TestSessionRoundTrip(t *testing.T) {
	rdb := newMemoryRedis()
	svc := NewSessionService(rdb, 0, zap.NewNop())
	ctx := context.Background()

	st := session.New().LoggedInAs("a@b.com").
		WithVideo("abc123", "hello world").
		WithGenerated(models.KindFlashcards, "cards").
		WithTranslated("Hindi", "patte").
		WithExport()

	token, err := svc.Create(ctx, session.New())
	require.NoError(t, err)
	assert.Len(t, token, 44)

	require.NoError(t, svc.Save(ctx, token, st))
	got, err := svc.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestSessionTokensAreDistinct(t *testing.T) {
	svc := NewSessionService(newMemoryRedis(), 0, zap.NewNop())

	a, err := svc.Create(context.Background(), session.New())
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), session.New())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSessionTTL(t *testing.T) {
	rdb := newMemoryRedis()
	ctx := context.Background()

	token, err := NewSessionService(rdb, 0, zap.NewNop()).Create(ctx, session.New())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), rdb.ttls[SessionKeyPrefix+token])

	token, err = NewSessionService(rdb, 2*time.Hour, zap.NewNop()).Create(ctx, session.New())
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, rdb.ttls[SessionKeyPrefix+token])
}

func TestSessionLoadMissingOrUnreadable(t *testing.T) {
	rdb := newMemoryRedis()
	svc := NewSessionService(rdb, 0, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Load(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Load(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	rdb.values[SessionKeyPrefix+"garbled"] = "{not json"
	_, err = svc.Load(ctx, "garbled")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionLoadRedisFailure(t *testing.T) {
	rdb := &fakeRedis{getFn: func(string) (string, error) { return "", errors.New("connection refused") }}
	svc := NewSessionService(rdb, 0, zap.NewNop())

	_, err := svc.Load(context.Background(), "tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionDelete(t *testing.T) {
	rdb := newMemoryRedis()
	svc := NewSessionService(rdb, 0, zap.NewNop())
	ctx := context.Background()

	token, err := svc.Create(ctx, session.New())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, token))
	_, err = svc.Load(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, svc.Delete(ctx, ""))
}
