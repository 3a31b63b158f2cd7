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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBucket_TokenConservation(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := newBucket(5, 1, now)

	// Five immediate acquisitions drain the bucket one token at a time.
	for i := 0; i < 5; i++ {
		wait, ok := b.tryAcquire(now)
		require.True(t, ok)
		require.Zero(t, wait)
		require.InDelta(t, float64(4-i), b.available(now), 1e-9)
	}

	// Sixth acquisition at the same instant must wait for a full token.
	wait, ok := b.tryAcquire(now)
	require.False(t, ok)
	require.InDelta(t, float64(time.Second), float64(wait), float64(time.Millisecond))

	// The failed acquisition consumed nothing.
	require.GreaterOrEqual(t, b.available(now), 0.0)
}

func TestBucket_RefillMonotonicity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		capacity     float64
		refillPerSec float64
		drained      int
		idle         time.Duration
		wantTokens   float64
	}{
		{
			name:         "partial refill",
			capacity:     10,
			refillPerSec: 2,
			drained:      10,
			idle:         2 * time.Second,
			wantTokens:   4,
		},
		{
			name:         "refill capped at capacity",
			capacity:     4,
			refillPerSec: 2,
			drained:      1,
			idle:         time.Minute,
			wantTokens:   4,
		},
		{
			name:         "fractional refill",
			capacity:     10,
			refillPerSec: 0.5,
			drained:      10,
			idle:         3 * time.Second,
			wantTokens:   1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			now := time.Now()
			b := newBucket(tt.capacity, tt.refillPerSec, now)

			for i := 0; i < tt.drained; i++ {
				_, ok := b.tryAcquire(now)
				require.True(t, ok)
			}

			got := b.available(now.Add(tt.idle))
			require.InDelta(t, tt.wantTokens, got, 1e-9)
		})
	}
}

func TestBucket_WaitTime(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := newBucket(1, 2, now)

	_, ok := b.tryAcquire(now)
	require.True(t, ok)

	// Empty bucket at 2 tokens/sec: one token exists after 500ms.
	wait, ok := b.tryAcquire(now)
	require.False(t, ok)
	require.InDelta(t, float64(500*time.Millisecond), float64(wait), float64(time.Millisecond))

	// Half a token accrued: 250ms remain.
	wait, ok = b.tryAcquire(now.Add(250 * time.Millisecond))
	require.False(t, ok)
	require.InDelta(t, float64(250*time.Millisecond), float64(wait), float64(time.Millisecond))

	// Full token accrued: acquisition succeeds without waiting.
	wait, ok = b.tryAcquire(now.Add(500 * time.Millisecond))
	require.True(t, ok)
	require.Zero(t, wait)
}

func TestBucket_NeverNegativeNeverOverCapacity(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := newBucket(3, 100, now)

	for i := 0; i < 50; i++ {
		now = now.Add(7 * time.Millisecond)
		b.tryAcquire(now)

		got := b.available(now)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 3.0)
	}
}
