package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cooldown keys in Redis with a TTL, so the window
// survives restarts and is shared between instances.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cooldown"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	k := s.key(key)

	ok, err := s.client.SetNX(ctx, k, time.Now().Unix(), window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("acquire cooldown: %w", err)
	}
	if ok {
		return true, 0, nil
	}

	ttl, err := s.client.TTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("read cooldown ttl: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return false, ttl, nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("clear cooldown: %w", err)
	}
	return nil
}
