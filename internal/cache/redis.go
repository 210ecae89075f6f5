// Package cache persists whole ledger collections to Redis so state
// survives process restarts. Each collection lives under one fixed key as
// a single JSON document; values are small enough that whole-document
// writes beat any finer-grained scheme.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Snapshots struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a short ping.
func New(addr, password string, db int) (*Snapshots, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Snapshots{client: client}, nil
}

// Save overwrites the collection stored under key. Snapshots have no TTL;
// they are the durable copy, not a cache of something else.
func (s *Snapshots) Save(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, body, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}

	return nil
}

// Load reads the collection stored under key into the given value. A
// missing key or an undecodable payload is an error; callers fall back to
// their built-in defaults.
func (s *Snapshots) Load(ctx context.Context, key string, into any) error {
	body, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", key, err)
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", key, err)
	}

	return nil
}

func (s *Snapshots) Close() error {
	return s.client.Close()
}
