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

// Package ratelimit bounds the rate of outbound API calls with keyed token
// buckets. Callers are delayed, never rejected: Acquire blocks the calling
// goroutine until a token is available or the context is cancelled.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fedspend/usaspending-mcp/models"
)

// DefaultKey is the rate-limit domain used when callers do not name one.
const DefaultKey = "default"

// Limiter owns one token bucket per logical domain. Buckets are created
// lazily on first reference with the process-wide configuration and live for
// the limiter's lifetime. All bucket state is private to the limiter.
type Limiter struct {
	config models.RateLimiterConfig
	logger *slog.Logger

	mu      sync.RWMutex
	buckets map[string]*bucket
}

// NewLimiter returns a limiter applying config to every domain. A nil config
// falls back to defaults.
func NewLimiter(config *models.RateLimiterConfig, logger *slog.Logger) (*Limiter, error) {
	if config == nil {
		config = models.NewDefaultRateLimiterConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Limiter{
		config:  *config,
		logger:  logger,
		buckets: make(map[string]*bucket),
	}, nil
}

// Acquire blocks until one token has been reserved from the bucket named by
// key, creating the bucket on first use. An empty key selects DefaultKey.
// The only possible error is the context's; on cancellation no token has
// been consumed.
func (l *Limiter) Acquire(ctx context.Context, key string) error {
	if key == "" {
		key = DefaultKey
	}

	b := l.bucket(key)

	for {
		wait, ok := b.tryAcquire(time.Now())
		if ok {
			return nil
		}

		if l.logger != nil {
			l.logger.Debug("rate limit reached, waiting",
				slog.String("key", key),
				slog.Duration("wait", wait),
			)
		}

		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Re-check: another waiter may have taken the refilled token.
		}
	}
}

// Available reports the current token count for a domain, refreshed to now.
// Intended for logging and tests; the value is stale the moment it returns.
func (l *Limiter) Available(key string) float64 {
	if key == "" {
		key = DefaultKey
	}

	return l.bucket(key).available(time.Now())
}

func (l *Limiter) bucket(key string) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()

	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok = l.buckets[key]; ok {
		return b
	}

	b = newBucket(l.config.Capacity, l.config.RefillPerSec, time.Now())
	l.buckets[key] = b

	return b
}
