package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps share records in Redis with native key expiry: each record
// is stored under a token key with a TTL matching its ExpiresAt, and a
// per-document key points at the live token to enforce single-active
// invalidation. Redis evicting an expired key surfaces as ErrNotFound, which
// the Manager already treats the same as an expired record.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	// Addr is the Redis server address, e.g. "localhost:6379".
	Addr string

	// Password is optional.
	Password string

	// DB is the Redis database number.
	DB int
}

// NewRedisStore connects to Redis and returns a share store.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Put stores a record under its token key with native expiry.
func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(rec.Token), data, ttl)
	pipe.Set(ctx, docKey(rec.DocumentID), rec.Token, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Get retrieves a record by token.
func (s *RedisStore) Get(ctx context.Context, token string) (Record, error) {
	data, err := s.client.Get(ctx, tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode share record: %w", err)
	}
	return rec, nil
}

// Delete removes a record by token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	rec, err := s.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, tokenKey(token))
	pipe.Del(ctx, docKey(rec.DocumentID))
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByDocument removes the live record for a document.
func (s *RedisStore) DeleteByDocument(ctx context.Context, docID string) error {
	token, err := s.client.Get(ctx, docKey(docID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, tokenKey(token))
	pipe.Del(ctx, docKey(docID))
	_, err = pipe.Exec(ctx)
	return err
}

// Close disconnects from Redis.
func (s *RedisStore) Close() error { return s.client.Close() }

func tokenKey(token string) string { return "share:token:" + token }
func docKey(docID string) string   { return "share:doc:" + docID }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
