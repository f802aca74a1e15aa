package redisidem

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "submit:"
	tokenTTL  = 24 * time.Hour

	// pending marks a reserved token whose order has not committed yet.
	pending = "pending"
)

// Store keeps order-submission tokens in Redis so a retried submission is
// answered with the original order instead of placing a second one.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(userID, token string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, userID, token)
}

func (s *Store) Reserve(ctx context.Context, userID, token string) (bool, error) {
	ok, err := s.client.SetNX(ctx, key(userID, token), pending, tokenTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reserve token: %w", err)
	}
	return ok, nil
}

func (s *Store) Release(ctx context.Context, userID, token string) error {
	return s.client.Del(ctx, key(userID, token)).Err()
}

func (s *Store) RecordOrder(ctx context.Context, userID, token, orderID string) error {
	return s.client.Set(ctx, key(userID, token), orderID, tokenTTL).Err()
}

func (s *Store) OrderID(ctx context.Context, userID, token string) (string, error) {
	val, err := s.client.Get(ctx, key(userID, token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if val == pending {
		return "", nil
	}
	return val, nil
}
