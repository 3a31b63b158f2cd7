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

package history

import (
	"context"
	"sync"
)

const defaultMemoryLimit = 200

// MemoryStore keeps the last N entries per session in memory. It is the
// default store and is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	limit   int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store keeping up to limit entries per session;
// limit <= 0 selects the default of 200.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = defaultMemoryLimit
	}

	return &MemoryStore{
		entries: make(map[string][]Entry),
		limit:   limit,
	}
}

// Append records an entry, evicting the oldest once the session is full.
func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.entries[entry.Session], entry)
	if len(entries) > s.limit {
		entries = entries[len(entries)-s.limit:]
	}

	s.entries[entry.Session] = entries

	return nil
}

// Tail returns up to n most recent entries for a session, newest first.
func (s *MemoryStore) Tail(_ context.Context, session string, n int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[session]
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}

	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}

	return out, nil
}
