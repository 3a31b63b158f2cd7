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

package logging

import "log/slog"

func WithClient(logger *slog.Logger, id string) *slog.Logger {
	group := slog.Group("client", "id", id)
	return logger.With(group)
}

func WithTool(logger *slog.Logger, name string) *slog.Logger {
	group := slog.Group("tool", "name", name)
	return logger.With(group)
}

func WithSession(logger *slog.Logger, id string) *slog.Logger {
	group := slog.Group("session", "id", id)
	return logger.With(group)
}

type StoreType string

const (
	StoreTypeUnknown StoreType = "unknown"
	StoreTypeMemory  StoreType = "memory"
	StoreTypeRedis   StoreType = "redis"
)

func WithStore(logger *slog.Logger, storeType StoreType) *slog.Logger {
	group := slog.Group("store", "type", storeType)
	return logger.With(group)
}
