package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "referralhub:session:"

// redisStore keeps sessions in Redis so several instances can share them
type redisStore struct {
	client *redis.Client
}

func newRedisStore(config StoreConfig) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{client: client}, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (rs *redisStore) get(ctx context.Context, id string) (*Session, error) {
	data, err := rs.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Redis get error: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("JSON unmarshal error: %w", err)
	}

	return &s, nil
}

func (rs *redisStore) set(ctx context.Context, s *Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("JSON marshal error: %w", err)
	}

	if err := rs.client.Set(ctx, redisKey(s.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("Redis set error: %w", err)
	}

	return nil
}

func (rs *redisStore) delete(ctx context.Context, id string) error {
	if err := rs.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("Redis delete error: %w", err)
	}
	return nil
}

func (rs *redisStore) close() error {
	return rs.client.Close()
}

func (rs *redisStore) healthCheck(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}
