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

import "time"

// Service contains the flags configuring the tool server and its outbound
// resilience pipeline. All values are read once at startup.
type Service struct {
	// Transport selects how tools are exposed: "stdio" or "http".
	Transport  string
	ListenAddr string

	// Inbound throttle for the HTTP transport; 0 disables it.
	InboundRPS   float64
	InboundBurst int

	// MaxConcurrent caps tool invocations in flight.
	MaxConcurrent int64

	// Outbound API settings.
	BaseURL            string
	RequestsPerMinute  int
	Burst              float64
	MaxAttempts        uint
	BaseDelay          time.Duration
	MaxDelay           time.Duration
	BackoffMultiplier  float64
	BackoffJitter      float64
	RetryMalformedBody bool

	// FARDir is the directory of FAR part files to index.
	FARDir string

	// History store settings. An empty RedisAddr selects the in-memory store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HistoryLimit  int
}
