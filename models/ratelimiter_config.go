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

import "fmt"

// RateLimiterConfig defines the token bucket parameters applied to every
// rate-limit domain. It is set once at startup and never mutated afterwards.
type RateLimiterConfig struct {
	// Capacity is the maximum number of tokens a bucket can hold, i.e. the
	// largest burst of calls that may proceed without waiting.
	Capacity float64

	// RefillPerSec is the number of tokens added to a bucket per second.
	RefillPerSec float64
}

// NewRateLimiterConfig returns a new rate limiter configuration.
func NewRateLimiterConfig(capacity, refillPerSec float64) *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:     capacity,
		RefillPerSec: refillPerSec,
	}
}

// NewDefaultRateLimiterConfig returns a configuration allowing a burst of 10
// calls and a sustained rate of 2 calls per second.
func NewDefaultRateLimiterConfig() *RateLimiterConfig {
	return NewRateLimiterConfig(10, 2)
}

// RateLimiterConfigFromRPM derives a bucket configuration from a
// requests-per-minute budget with the given burst capacity.
func RateLimiterConfigFromRPM(rpm int, burst float64) *RateLimiterConfig {
	return NewRateLimiterConfig(burst, float64(rpm)/60)
}

// Validate checks rate limiter configuration values.
func (c *RateLimiterConfig) Validate() error {
	if c == nil {
		return nil
	}

	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be greater than or equal to 1")
	}

	if c.RefillPerSec <= 0 {
		return fmt.Errorf("refill rate must be positive")
	}

	return nil
}
