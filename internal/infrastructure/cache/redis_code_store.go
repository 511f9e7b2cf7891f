package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/infrastructure/config"
)

// RedisCodeStore implements identity.VerificationCodeStore using Redis.
// Suitable for distributed deployments where multiple instances need to see
// the same pending codes.
type RedisCodeStore struct {
	client    *redis.Client
	keyPrefix string
}

// consumeScript atomically compares the stored code and deletes it on match.
// Returns 1 on a match, 0 otherwise.
var consumeScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		redis.call("DEL", KEYS[1])
		return 1
	end
	return 0
`)

// NewRedisCodeStore creates a new Redis-backed verification code store
func NewRedisCodeStore(cfg config.RedisConfig) (*RedisCodeStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCodeStore{
		client:    client,
		keyPrefix: "sms:code:",
	}, nil
}

// NewRedisCodeStoreWithClient creates a store with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisCodeStoreWithClient(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{
		client:    client,
		keyPrefix: "sms:code:",
	}
}

// Put stores the code for the phone number, replacing any previous one
func (s *RedisCodeStore) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	key := s.keyPrefix + phone

	if err := s.client.Set(ctx, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// Consume atomically checks and removes the stored code
func (s *RedisCodeStore) Consume(ctx context.Context, phone, code string) (bool, error) {
	key := s.keyPrefix + phone

	result, err := consumeScript.Run(ctx, s.client, []string{key}, code).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume verification code: %w", err)
	}
	return result == 1, nil
}

// Close closes the Redis client
func (s *RedisCodeStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisCodeStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisCodeStore implements VerificationCodeStore
var _ identity.VerificationCodeStore = (*RedisCodeStore)(nil)
