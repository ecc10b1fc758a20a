package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flowohq/storefront-gateway/pkg/redis"
)

// RedisStore keeps session carts in Redis so guest carts survive gateway
// restarts and are shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, token string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(token))
	if errors.Is(err, redis.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(token), payload, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartKey(token)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
