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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fedspend/usaspending-mcp/models"
)

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()

		l, err := NewLimiter(nil, nil)
		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("invalid config fails", func(t *testing.T) {
		t.Parallel()

		l, err := NewLimiter(models.NewRateLimiterConfig(0, 1), nil)
		require.Error(t, err)
		require.Nil(t, l)
	})
}

func TestLimiter_AcquireWithinCapacity(t *testing.T) {
	t.Parallel()

	l, err := NewLimiter(models.NewRateLimiterConfig(5, 1), nil)
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Acquire(ctx, "default"))
	}

	// A burst within capacity must not block.
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_IndependentDomains(t *testing.T) {
	t.Parallel()

	l, err := NewLimiter(models.NewRateLimiterConfig(1, 0.1), nil)
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()

	// Each key gets its own bucket, so both acquisitions are immediate.
	require.NoError(t, l.Acquire(ctx, "search"))
	require.NoError(t, l.Acquire(ctx, "agency"))
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_EmptyKeyIsDefault(t *testing.T) {
	t.Parallel()

	l, err := NewLimiter(models.NewRateLimiterConfig(2, 0.1), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, l.Acquire(ctx, ""))

	// The empty key drew from the default bucket.
	require.InDelta(t, 1.0, l.Available(DefaultKey), 0.05)
}

func TestLimiter_ConcurrentAcquireDoesNotStarve(t *testing.T) {
	t.Parallel()

	// capacity=1, refill=10/s: three concurrent acquisitions should finish
	// at roughly t=0, t=100ms and t=200ms.
	l, err := NewLimiter(models.NewRateLimiterConfig(1, 10), nil)
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		finished []time.Duration
	)

	for i := 0; i < 3; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			require.NoError(t, l.Acquire(ctx, "default"))

			mu.Lock()
			finished = append(finished, time.Since(start))
			mu.Unlock()
		}()
	}

	wg.Wait()

	require.Len(t, finished, 3)

	var immediate, delayed int

	for _, d := range finished {
		require.Less(t, d, 400*time.Millisecond, "no waiter may starve")

		if d < 50*time.Millisecond {
			immediate++
		} else {
			delayed++
		}
	}

	// Exactly one call gets the burst token; the rest wait for refill.
	require.Equal(t, 1, immediate)
	require.Equal(t, 2, delayed)
}

func TestLimiter_AcquireObservesCancellation(t *testing.T) {
	t.Parallel()

	l, err := NewLimiter(models.NewRateLimiterConfig(1, 0.1), nil)
	require.NoError(t, err)

	// Drain the single token.
	require.NoError(t, l.Acquire(context.Background(), "default"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = l.Acquire(ctx, "default")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The cancelled waiter must not have consumed or reserved anything.
	require.InDelta(t, 0.0, l.Available("default"), 0.05)
}
