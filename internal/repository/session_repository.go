package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/model"
)

// RedisSessionRepository stores admin sessions in Redis. Keys expire with the session,
// so Redis evicts stale tokens on its own.
type RedisSessionRepository struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisSessionRepository creates a new RedisSessionRepository.
func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, now: time.Now}
}

// Create stores s under its token until s.ExpiresAt.
func (r *RedisSessionRepository) Create(ctx context.Context, s *model.AdminSession) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.CacheKey.AdminSessionKey(s.Token), payload, ttl).Err()
}

// Get returns the session stored under token.
func (r *RedisSessionRepository) Get(ctx context.Context, token string) (*model.AdminSession, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.AdminSessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s := &model.AdminSession{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes the session and reports whether it existed.
func (r *RedisSessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	n, err := r.rdb.Del(ctx, config.CacheKey.AdminSessionKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
