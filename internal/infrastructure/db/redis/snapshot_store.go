package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightpixel/rolodex/internal/core/domain"
	"github.com/brightpixel/rolodex/internal/infrastructure/snapshot"
)

const defaultTimeout = 5 * time.Second

// Config selects the Redis database and key that hold the snapshot.
type Config struct {
	Addr    string
	DB      int
	Key     string
	Timeout time.Duration
}

// SnapshotStore keeps the JSON snapshot document under a single key.
type SnapshotStore struct {
	client *redis.Client
	key    string
}

// NewSnapshotStore creates a SnapshotStore wrapping the given Redis client.
func NewSnapshotStore(client *redis.Client, key string) *SnapshotStore {
	return &SnapshotStore{client: client, key: key}
}

// Open dials Redis and returns a store bound to cfg.Key once the server
// answers a ping.
func Open(ctx context.Context, cfg Config) (*SnapshotStore, error) {
	if cfg.Key == "" {
		return nil, errors.New("redis snapshot: empty key")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	store := NewSnapshotStore(client, cfg.Key)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis snapshot %s/%d: %w", cfg.Addr, cfg.DB, err)
	}
	return store, nil
}

func (s *SnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return snapshot.Decode(data)
}

func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SnapshotStore) Close() error {
	return s.client.Close()
}
