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

package ratelimit

import (
	"math"
	"sync"
	"time"
)

// bucket is a single token bucket. Tokens are fractional and recomputed
// lazily from elapsed time on every acquisition attempt; the bucket never
// runs its own timer.
type bucket struct {
	mu sync.Mutex

	capacity     float64
	refillPerSec float64

	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity, refillPerSec float64, now time.Time) *bucket {
	return &bucket{
		capacity:     capacity,
		refillPerSec: refillPerSec,
		tokens:       capacity,
		lastRefill:   now,
	}
}

// refill adds tokens for the time elapsed since the last refill, capped at
// capacity. Callers must hold b.mu.
func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.refillPerSec)
	b.lastRefill = now
}

// tryAcquire attempts to reserve one token. On success it returns ok=true.
// Otherwise it returns the wait until at least one token will exist; the
// caller is expected to sleep and try again, since another waiter may take
// the token first.
func (b *bucket) tryAcquire(now time.Time) (wait time.Duration, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)

	if b.tokens >= 1 {
		b.tokens--
		return 0, true
	}

	wait = time.Duration((1 - b.tokens) / b.refillPerSec * float64(time.Second))

	return wait, false
}

// available reports the current token count after a refill at now.
func (b *bucket) available(now time.Time) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)

	return b.tokens
}
