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

package app

import (
	"fmt"
	"log/slog"
	"os"
)

// NewLogger builds the process logger from the app flags. Logs go to stderr:
// on the stdio transport, stdout carries the protocol stream.
func NewLogger(level string, isVerbose, isJSON bool) (*slog.Logger, error) {
	var logLvl slog.Level

	if err := logLvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if isVerbose {
		logLvl = slog.LevelDebug
	}

	loggerOpt := &slog.HandlerOptions{Level: logLvl}

	switch isJSON {
	case true:
		return slog.New(slog.NewJSONHandler(os.Stderr, loggerOpt)), nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, loggerOpt)), nil
	}
}
