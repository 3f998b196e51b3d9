package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore 已签发会话令牌的登记表，登出后令牌即失效
type SessionStore interface {
	Save(ctx context.Context, tokenID string, identityID uint, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}

type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: "career_advisor:session:"}
}

func (s *RedisSessionStore) key(tokenID string) string {
	return s.prefix + tokenID
}

func (s *RedisSessionStore) Save(ctx context.Context, tokenID string, identityID uint, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), strconv.FormatUint(uint64(identityID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, s.key(tokenID)).Err()
}
