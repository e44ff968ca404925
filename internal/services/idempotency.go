package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// idempotencyTTL is how long a checkout token is remembered. Retries after
// the window create a fresh preference, which is acceptable since hosted
// checkout links themselves expire.
const idempotencyTTL = 15 * time.Minute

// RedisIdempotencyStore keeps checkout tokens in Redis so dedupe works
// across instances.
type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(redisURL string) (*RedisIdempotencyStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisIdempotencyStore{client: client}, nil
}

func (s *RedisIdempotencyStore) Claim(ctx context.Context, token string) (bool, error) {
	return s.client.SetNX(ctx, claimKey(token), "1", idempotencyTTL).Result()
}

func (s *RedisIdempotencyStore) Lookup(ctx context.Context, token string) (string, error) {
	value, err := s.client.Get(ctx, resultKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return value, err
}

func (s *RedisIdempotencyStore) Store(ctx context.Context, token string, initPoint string) error {
	return s.client.Set(ctx, resultKey(token), initPoint, idempotencyTTL).Err()
}

func claimKey(token string) string  { return "checkout:token:" + token }
func resultKey(token string) string { return "checkout:result:" + token }

// MemoryIdempotencyStore is the single-instance fallback used when no
// Redis URL is configured.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	claims  map[string]time.Time
	results map[string]string
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		claims:  make(map[string]time.Time),
		results: make(map[string]string),
	}
}

func (s *MemoryIdempotencyStore) Claim(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()

	if _, exists := s.claims[token]; exists {
		return false, nil
	}
	s.claims[token] = time.Now().Add(idempotencyTTL)
	return true, nil
}

func (s *MemoryIdempotencyStore) Lookup(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[token], nil
}

func (s *MemoryIdempotencyStore) Store(ctx context.Context, token string, initPoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[token] = initPoint
	return nil
}

func (s *MemoryIdempotencyStore) expireLocked() {
	now := time.Now()
	for token, deadline := range s.claims {
		if now.After(deadline) {
			delete(s.claims, token)
			delete(s.results, token)
		}
	}
}

// NewIdempotencyStore returns the Redis-backed store when a URL is
// configured and reachable, falling back to the in-memory store otherwise.
func NewIdempotencyStore(redisURL string) IdempotencyStore {
	if redisURL == "" {
		return NewMemoryIdempotencyStore()
	}
	store, err := NewRedisIdempotencyStore(redisURL)
	if err != nil {
		log.Printf("redis unavailable (%v), using in-memory idempotency store", err)
		return NewMemoryIdempotencyStore()
	}
	log.Println("using Redis idempotency store")
	return store
}
