// README: Provider override store backed by Redis.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const overridesKey = "registry:provider_overrides"

// Store persists the user's enable/disable overrides.
type Store interface {
	LoadOverrides(ctx context.Context) ([]Override, error)
	SaveOverrides(ctx context.Context, overrides []Override) error
}

type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redis *redis.Client) *RedisStore {
	return &RedisStore{redis: redis}
}

// LoadOverrides returns nil (no overrides) when the key has never been
// written; any other failure surfaces so the service can degrade to
// defaults.
func (s *RedisStore) LoadOverrides(ctx context.Context) ([]Override, error) {
	raw, err := s.redis.Get(ctx, overridesKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	var overrides []Override
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	return overrides, nil
}

func (s *RedisStore) SaveOverrides(ctx context.Context, overrides []Override) error {
	raw, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}
	if err := s.redis.Set(ctx, overridesKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("save overrides: %w", err)
	}
	return nil
}
