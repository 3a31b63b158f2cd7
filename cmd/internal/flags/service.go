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

package flags

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/fedspend/usaspending-mcp/cmd/internal/models"
	"github.com/fedspend/usaspending-mcp/internal/usaspending"
)

type Service struct {
	models.Service
}

func NewService() *Service {
	return &Service{}
}

func (f *Service) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.StringVar(&f.Transport, "transport",
		"stdio",
		"Tool transport: stdio or http.")
	flagSet.StringVar(&f.ListenAddr, "listen",
		":8080",
		"Listen address for the http transport.")
	flagSet.Float64Var(&f.InboundRPS, "inbound-rps",
		0,
		"Inbound requests per second allowed on the http transport. 0 disables the throttle.")
	flagSet.IntVar(&f.InboundBurst, "inbound-burst",
		10,
		"Inbound burst allowance on the http transport.")
	flagSet.Int64Var(&f.MaxConcurrent, "max-concurrent",
		8,
		"Maximum tool invocations in flight.")

	flagSet.StringVar(&f.BaseURL, "api-url",
		usaspending.DefaultBaseURL,
		"Base URL of the USASpending API.")
	flagSet.IntVar(&f.RequestsPerMinute, "requests-per-minute",
		120,
		"Sustained outbound request budget.")
	flagSet.Float64Var(&f.Burst, "burst",
		10,
		"Outbound burst capacity, the number of calls that may proceed without waiting.")
	flagSet.UintVar(&f.MaxAttempts, "max-attempts",
		3,
		"Total attempts per outbound call, including the first one.")
	flagSet.DurationVar(&f.BaseDelay, "base-delay",
		time.Second,
		"Backoff delay before the second attempt.")
	flagSet.DurationVar(&f.MaxDelay, "max-delay",
		10*time.Second,
		"Upper bound on the backoff delay.")
	flagSet.Float64Var(&f.BackoffMultiplier, "backoff-multiplier",
		2,
		"Backoff growth factor between attempts.")
	flagSet.Float64Var(&f.BackoffJitter, "backoff-jitter",
		0.1,
		"Fraction of the backoff delay added as random jitter, in [0, 1].")
	flagSet.BoolVar(&f.RetryMalformedBody, "retry-malformed-body",
		false,
		"Treat 2xx responses with undecodable bodies as retryable.")

	flagSet.StringVar(&f.FARDir, "far-dir",
		"far",
		"Directory holding FAR part JSON files.")

	flagSet.StringVar(&f.RedisAddr, "redis-addr",
		"",
		"Redis address for a shared history store. Empty keeps history in memory.")
	flagSet.StringVar(&f.RedisPassword, "redis-password",
		"",
		"Redis password.")
	flagSet.IntVar(&f.RedisDB, "redis-db",
		0,
		"Redis database number.")
	flagSet.IntVar(&f.HistoryLimit, "history-limit",
		200,
		"Number of history entries kept per session.")

	return flagSet
}

func (f *Service) GetService() *models.Service {
	return &f.Service
}
