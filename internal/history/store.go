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

// Package history records tool invocations for audit and conversation
// recall. Stores keep a bounded, most-recent-first window per session; they
// are caches, not systems of record.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal class of a recorded invocation.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeFatal       Outcome = "fatal"
	OutcomeUnavailable Outcome = "unavailable"
)

// Entry is one recorded tool invocation.
type Entry struct {
	ID      string        `json:"id"`
	Session string        `json:"session"`
	Tool    string        `json:"tool"`
	Args    string        `json:"args"`
	Outcome Outcome       `json:"outcome"`
	Detail  string        `json:"detail,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
	Time    time.Time     `json:"time"`
}

// NewEntry returns an entry with a fresh id and the current time.
func NewEntry(session, tool, args string) Entry {
	return Entry{
		ID:      uuid.NewString(),
		Session: session,
		Tool:    tool,
		Args:    args,
		Time:    time.Now().UTC(),
	}
}

// Store persists invocation entries per session.
type Store interface {
	// Append records an entry under its session.
	Append(ctx context.Context, entry Entry) error

	// Tail returns up to n most recent entries for a session, newest first.
	Tail(ctx context.Context, session string, n int) ([]Entry, error)
}
