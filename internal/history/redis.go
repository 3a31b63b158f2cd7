// Copyright 2025 FedSpend, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "usaspending-mcp:history:"

// RedisStore keeps per-session entry lists in Redis, for deployments where
// several server processes should share one audit trail.
type RedisStore struct {
	client *redis.Client
	limit  int64
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	// Addr is the server address, e.g. "localhost:6379".
	Addr string

	// Password is empty for unauthenticated servers.
	Password string

	// DB is the database number.
	DB int

	// Limit is the number of entries kept per session (default 200).
	Limit int

	// TTL is how long an idle session's history is kept (default 24h).
	TTL time.Duration
}

// NewRedisStore returns a Redis-backed store and verifies connectivity.
func NewRedisStore(ctx context.Context, config RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}

	limit := int64(config.Limit)
	if limit <= 0 {
		limit = defaultMemoryLimit
	}

	ttl := config.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &RedisStore{
		client: client,
		limit:  limit,
		ttl:    ttl,
	}, nil
}

// Append pushes the entry onto the session list, trims it to the limit and
// refreshes the session TTL.
func (s *RedisStore) Append(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	key := keyPrefix + entry.Session

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, s.limit-1)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	return nil
}

// Tail returns up to n most recent entries for a session, newest first.
func (s *RedisStore) Tail(ctx context.Context, session string, n int) ([]Entry, error) {
	if n <= 0 || int64(n) > s.limit {
		n = int(s.limit)
	}

	values, err := s.client.LRange(ctx, keyPrefix+session, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	entries := make([]Entry, 0, len(values))

	for _, v := range values {
		var entry Entry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
