package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore is a BlobStore over a redis instance, suitable when
// several processes share the same record store.
type RedisBlobStore struct {
	client *redis.Client
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisBlobStore connects to redis and verifies the connection
func NewRedisBlobStore(cfg RedisConfig) (*RedisBlobStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisBlobStore{client: client}, nil
}

// NewRedisBlobStoreWithClient wraps an existing client. Useful for tests
// and for sharing one client with the redis notifier.
func NewRedisBlobStoreWithClient(client *redis.Client) *RedisBlobStore {
	return &RedisBlobStore{client: client}
}

// Get returns the payload stored under the partition key
func (s *RedisBlobStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read partition %s: %w", key, err)
	}
	return b, true, nil
}

// Set stores the payload with no expiry
func (s *RedisBlobStore) Set(ctx context.Context, key Key, payload []byte) error {
	if err := s.client.Set(ctx, key.String(), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write partition %s: %w", key, err)
	}
	return nil
}

// Delete removes the payload
func (s *RedisBlobStore) Delete(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, key.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete partition %s: %w", key, err)
	}
	return nil
}

// Client exposes the underlying client for sharing with the notifier
func (s *RedisBlobStore) Client() *redis.Client {
	return s.client
}

// Close closes the underlying client
func (s *RedisBlobStore) Close() error {
	return s.client.Close()
}

var _ BlobStore = (*RedisBlobStore)(nil)
