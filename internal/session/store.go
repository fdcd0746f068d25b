package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

// Store keeps server-side sessions in Redis as session:<id> -> user id.
type Store struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewStore(client *redisv9.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, key(sid), strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis create session failed: %w", err)
	}
	return sid, nil
}

// Lookup returns the user bound to sid. A missing or expired session yields
// ok == false and no error.
func (s *Store) Lookup(ctx context.Context, sid string) (uint, bool, error) {
	raw, err := s.client.Get(ctx, key(sid)).Result()
	if errors.Is(err, redisv9.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get session failed: %w", err)
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse session value failed: %w", err)
	}
	return uint(userID), true, nil
}

func (s *Store) Destroy(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, key(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func key(sid string) string {
	return "session:" + sid
}
