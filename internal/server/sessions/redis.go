package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/stgmsg/internal/common"
	"github.com/dmitrijs2005/stgmsg/internal/server/models"
)

const sessionKeyPrefix = "session:"

// RedisRepository stores the active session per user as a JSON value with a
// TTL matching the validity window, so expired sessions clean themselves up.
// Useful when several relay processes should share one session table.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) Put(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	// SET replaces any previous value in one step.
	if err := r.rdb.Set(ctx, sessionKeyPrefix+session.Username, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, username string) (*models.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKeyPrefix+username).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session := &models.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

func (r *RedisRepository) Delete(ctx context.Context, username, tokenID string) error {
	session, err := r.Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if session.TokenID != tokenID {
		return nil
	}
	return r.rdb.Del(ctx, sessionKeyPrefix+username).Err()
}
