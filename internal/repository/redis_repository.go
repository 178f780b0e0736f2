package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) StateRepository {
	return &redisRepository{rdb: rdb}
}

func stateKey(namespace string) string { return fmt.Sprintf("state:%s", namespace) }

func (r *redisRepository) Load(ctx context.Context, namespace string) ([]byte, error) {
	blob, err := r.rdb.Get(ctx, stateKey(namespace)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not load state %q: %w", namespace, err)
	}
	return blob, nil
}

// Save stores the blob without expiry; the history has no TTL.
func (r *redisRepository) Save(ctx context.Context, namespace string, blob []byte) error {
	if err := r.rdb.Set(ctx, stateKey(namespace), blob, 0).Err(); err != nil {
		return fmt.Errorf("could not save state %q: %w", namespace, err)
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, namespace string) error {
	if err := r.rdb.Del(ctx, stateKey(namespace)).Err(); err != nil {
		return fmt.Errorf("could not delete state %q: %w", namespace, err)
	}
	return nil
}
