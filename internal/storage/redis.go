package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshots persists session state snapshots, one key per namespace.
// Snapshots have no TTL: they exist to survive agent restarts.
type RedisSnapshots struct {
	Client *redis.Client
	Prefix string
}

func NewRedisSnapshots(client *redis.Client, prefix string) *RedisSnapshots {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisSnapshots{Client: client, Prefix: prefix}
}

func (s *RedisSnapshots) key(namespace string) string {
	return s.Prefix + ":" + namespace
}

func (s *RedisSnapshots) Save(ctx context.Context, namespace string, data []byte) error {
	return s.Client.Set(ctx, s.key(namespace), data, 0).Err()
}

func (s *RedisSnapshots) Load(ctx context.Context, namespace string) ([]byte, error) {
	data, err := s.Client.Get(ctx, s.key(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisSnapshots) Delete(ctx context.Context, namespace string) error {
	return s.Client.Del(ctx, s.key(namespace)).Err()
}
