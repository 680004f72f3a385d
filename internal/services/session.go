package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/session"
)

// SessionKeyPrefix is the Redis key prefix for sessions
const SessionKeyPrefix = "session:"

// ErrSessionNotFound is returned for unknown or expired tokens.
var ErrSessionNotFound = errors.New("session not found")

// SessionService keeps one session.State per browser token in Redis.
type SessionService struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionService stores sessions for ttl; 0 keeps them until logout.
func NewSessionService(rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{rdb: rdb, ttl: ttl, logger: logger}
}

// Create stores a fresh state under a new random token and returns the token.
func (s *SessionService) Create(ctx context.Context, st session.State) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.Save(ctx, token, st); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionService) Load(ctx context.Context, token string) (session.State, error) {
	if token == "" {
		return session.State{}, ErrSessionNotFound
	}
	raw, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return session.State{}, ErrSessionNotFound
	}
	if err != nil {
		return session.State{}, fmt.Errorf("load session: %w", err)
	}

	var st session.State
	if err := json.Unmarshal(raw, &st); err != nil {
		s.logger.Warn("discarding unreadable session", zap.Error(err))
		return session.State{}, ErrSessionNotFound
	}
	return st, nil
}

// Save overwrites the state for token and restarts its expiry.
func (s *SessionService) Save(ctx context.Context, token string, st session.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, SessionKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session from Redis
func (s *SessionService) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, SessionKeyPrefix+token).Err()
}
