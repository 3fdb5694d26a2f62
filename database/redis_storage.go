package database

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterKeyPrefix = "studio:limiter:"

// RedisStorage implements fiber.Storage on top of Redis so that rate limit
// counters are shared between API instances.
type RedisStorage struct {
	Client *redis.Client
}

// NewRedisStorage connects to redis with short timeouts.
func NewRedisStorage(addr string) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &RedisStorage{Client: client}
}

// Healthy verifies redis connectivity.
func (r *RedisStorage) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

func (r *RedisStorage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}
	val, err := r.Client.Get(context.Background(), limiterKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (r *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	return r.Client.Set(context.Background(), limiterKeyPrefix+key, val, exp).Err()
}

func (r *RedisStorage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}
	return r.Client.Del(context.Background(), limiterKeyPrefix+key).Err()
}

// Reset removes every limiter key, leaving the rest of the keyspace alone.
func (r *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := r.Client.Scan(ctx, 0, limiterKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisStorage) Close() error {
	return r.Client.Close()
}
