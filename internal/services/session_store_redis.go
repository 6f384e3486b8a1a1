package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type redisSessionStore struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisSessionStore keeps sessions under "<prefix>:<session id>". A zero
// ttl keeps them until logout.
func NewRedisSessionStore(log *logger.Logger, rdb goredis.UniversalClient, prefix string, ttl time.Duration) SessionStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "photoshare:session"
	}
	return &redisSessionStore{
		log:    log.With("service", "RedisSessionStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *redisSessionStore) key(sessionID uuid.UUID) string {
	return s.prefix + ":" + sessionID.String()
}

func (s *redisSessionStore) Put(ctx context.Context, session *types.Session) error {
	if session == nil {
		return nil
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(session.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID uuid.UUID) (*types.Session, error) {
	raw, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var session types.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		s.log.Warn("Dropping unreadable session record", "session_id", sessionID.String(), "error", err)
		_ = s.rdb.Del(ctx, s.key(sessionID)).Err()
		return nil, nil
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	n, err := s.rdb.Del(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis delete session: %w", err)
	}
	return n > 0, nil
}
