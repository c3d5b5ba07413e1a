package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound is returned when no confirmation code is stored for a
// user, either because none was requested or because it expired or was
// already consumed.
var ErrCodeNotFound = errors.New("confirmation code not found")

// CodeStore holds bcrypt hashes of outstanding confirmation codes, one per
// user. The TTL makes codes time-bound; Delete on successful verification
// makes them single-use.
type CodeStore interface {
	Set(ctx context.Context, userID, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

type redisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) CodeStore {
	return &redisCodeStore{client: client}
}

func codeKey(userID string) string {
	return "auth:code:" + userID
}

func (s *redisCodeStore) Set(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKey(userID), codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

func (s *redisCodeStore) Get(ctx context.Context, userID string) (string, error) {
	hash, err := s.client.Get(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load confirmation code: %w", err)
	}
	return hash, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, codeKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete confirmation code: %w", err)
	}
	return nil
}
