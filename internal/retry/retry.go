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

// Package retry runs a single outbound operation under a retry policy with
// exponential backoff, drawing one rate-limiter token per attempt. Every
// call resolves to exactly one of: success, fatal failure, or
// ErrRetriesExhausted.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fedspend/usaspending-mcp/internal/ratelimit"
	"github.com/fedspend/usaspending-mcp/models"
)

// Operation performs exactly one outbound call. It must be safe to invoke
// again after a failure, and must tag retryable failures with Transient.
type Operation[T any] func(ctx context.Context) (T, error)

// Executor combines a rate limiter with a retry policy. It is cheap, has no
// per-call state and is safe for concurrent use.
type Executor struct {
	limiter *ratelimit.Limiter
	policy  models.RetryPolicy
	logger  *slog.Logger
}

// NewExecutor returns an executor using policy for every call. A nil policy
// falls back to defaults.
func NewExecutor(limiter *ratelimit.Limiter, policy *models.RetryPolicy, logger *slog.Logger) (*Executor, error) {
	if policy == nil {
		policy = models.NewDefaultRetryPolicy()
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &Executor{
		limiter: limiter,
		policy:  *policy,
		logger:  logger,
	}, nil
}

// Do runs op until it succeeds, fails fatally, or exhausts the policy's
// attempt budget. Each attempt acquires one token from the executor's rate
// limiter under key, so retries never bypass rate limiting. Fatal failures
// propagate unchanged; a persistent transient failure is returned as an
// ExhaustedError wrapping the last attempt's cause.
func Do[T any](ctx context.Context, e *Executor, key string, op Operation[T]) (T, error) {
	var (
		zero    T
		lastErr *TransientError
	)

	for attempt := uint(1); attempt <= e.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := e.policy.Delay(attempt)

			if e.logger != nil {
				e.logger.Warn("retrying after transient failure",
					slog.Uint64("attempt", uint64(attempt)),
					slog.Duration("delay", delay),
					slog.Any("err", lastErr.Err),
				)
			}

			timer := time.NewTimer(delay)

			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}

		if err := e.limiter.Acquire(ctx, key); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		var tErr *TransientError
		if !errors.As(err, &tErr) {
			// Fatal: retrying would fail identically, don't burn budget.
			return zero, err
		}

		lastErr = tErr
	}

	return zero, &ExhaustedError{
		Attempts: e.policy.MaxAttempts,
		Err:      lastErr.Err,
	}
}
