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

package models

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy defines the configuration for retry attempts in case of failures.
type RetryPolicy struct {
	// BaseDelay is the delay before the second attempt.
	BaseDelay time.Duration

	// MaxDelay caps the delay between attempts regardless of the multiplier.
	MaxDelay time.Duration

	// Multiplier is used to increase the delay between subsequent retry attempts.
	// The actual delay is calculated as: BaseDelay * (Multiplier ^ (attemptNumber - 1))
	Multiplier float64

	// MaxAttempts is the total number of attempts that will be made, including
	// the first one. Must be at least 1.
	MaxAttempts uint

	// Jitter is the fraction of the computed delay that may be added as random
	// noise, in [0, 1]. Zero disables jitter and makes the schedule exact.
	Jitter float64
}

// NewRetryPolicy returns new configuration for retry attempts in case of failures.
func NewRetryPolicy(baseDelay, maxDelay time.Duration, multiplier float64, maxAttempts uint) *RetryPolicy {
	return &RetryPolicy{
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
		Multiplier:  multiplier,
		MaxAttempts: maxAttempts,
	}
}

// NewDefaultRetryPolicy returns a new RetryPolicy with default values.
func NewDefaultRetryPolicy() *RetryPolicy {
	return NewRetryPolicy(time.Second, 10*time.Second, 2, 3)
}

// Validate checks retry policy values.
func (p *RetryPolicy) Validate() error {
	if p == nil {
		return nil
	}

	if p.BaseDelay <= 0 {
		return fmt.Errorf("base delay must be positive")
	}

	if p.MaxDelay < p.BaseDelay {
		return fmt.Errorf("max delay must be greater than or equal to base delay")
	}

	if p.Multiplier <= 1 {
		return fmt.Errorf("multiplier must be greater than 1")
	}

	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be greater than or equal to 1")
	}

	if p.Jitter < 0 || p.Jitter > 1 {
		return fmt.Errorf("jitter must be in [0, 1]")
	}

	return nil
}

// Delay returns the wait before the given 1-based attempt. Attempt 1 has no
// wait; attempt n waits BaseDelay * Multiplier^(n-2), capped at MaxDelay.
// Jitter, when enabled, perturbs the capped value upwards only, so the
// unjittered exponential schedule remains the lower bound.
func (p *RetryPolicy) Delay(attempt uint) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delay := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-2))
	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}

	if p.Jitter > 0 {
		delay += rand.Float64() * p.Jitter * delay
	}

	return time.Duration(delay)
}
