package tokenstore

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// tokenKey is the single well-known key holding the session token.
const tokenKey = "storefront:auth:token"

// Redis is a Store backed by a Redis instance so the session survives
// process restarts.
type Redis struct {
	client *redis.Client
}

// NewRedisClient initializes and returns a Redis client
func NewRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Invalid Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Connected to Redis")
	return client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, token string) error {
	return r.client.Set(ctx, tokenKey, token, 0).Err()
}

func (r *Redis) Remove(ctx context.Context) error {
	return r.client.Del(ctx, tokenKey).Err()
}
