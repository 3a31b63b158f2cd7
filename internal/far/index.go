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

// Package far holds an in-memory index of Federal Acquisition Regulation
// text, loaded from a directory of JSON part files, and answers keyword
// searches against it. The index is immutable after loading.
package far

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// loadParallelism bounds how many part files are parsed concurrently.
const loadParallelism = 8

// Section is one addressable unit of regulation text.
type Section struct {
	Part   int    `json:"part"`
	Number string `json:"number"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// partFile is the on-disk shape of one FAR part.
type partFile struct {
	Part     int       `json:"part"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Result is a scored search hit.
type Result struct {
	Section Section
	Score   float64
}

// Index is an immutable in-memory FAR section index.
type Index struct {
	sections []Section
	byNumber map[string]int
	logger   *slog.Logger
}

// Load reads every *.json part file under dir and builds the index. Files
// are parsed in parallel; a single unreadable file fails the whole load,
// since a partial regulation index silently returns wrong answers.
func Load(ctx context.Context, dir string, logger *slog.Logger) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAR directory: %w", err)
	}

	var (
		mu       sync.Mutex
		sections []Section
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadParallelism)

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			part, err := loadPart(path)
			if err != nil {
				return err
			}

			mu.Lock()
			sections = append(sections, part.Sections...)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Number < sections[j].Number
	})

	byNumber := make(map[string]int, len(sections))
	for i, s := range sections {
		byNumber[s.Number] = i
	}

	if logger != nil {
		logger.Info("loaded FAR index",
			slog.String("dir", dir),
			slog.Int("sections", len(sections)),
		)
	}

	return &Index{
		sections: sections,
		byNumber: byNumber,
		logger:   logger,
	}, nil
}

func loadPart(path string) (*partFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAR part file %s: %w", path, err)
	}

	var part partFile
	if err := json.Unmarshal(data, &part); err != nil {
		return nil, fmt.Errorf("failed to parse FAR part file %s: %w", path, err)
	}

	// Propagate the part number to sections that omit it.
	for i := range part.Sections {
		if part.Sections[i].Part == 0 {
			part.Sections[i].Part = part.Part
		}
	}

	return &part, nil
}

// Len reports the number of indexed sections.
func (idx *Index) Len() int {
	return len(idx.sections)
}

// Section returns the section with the given number, e.g. "52.219-14".
func (idx *Index) Section(number string) (Section, bool) {
	i, ok := idx.byNumber[number]
	if !ok {
		return Section{}, false
	}

	return idx.sections[i], true
}

// Search scores every section against the query keywords and returns up to
// limit hits, best first. Matching is case-insensitive; title matches weigh
// more than body matches.
func (idx *Index) Search(query string, limit int) []Result {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	if limit <= 0 {
		limit = 10
	}

	results := make([]Result, 0, limit)

	for _, s := range idx.sections {
		score := scoreSection(s, terms)
		if score <= 0 {
			continue
		}

		results = append(results, Result{Section: s, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}

const titleWeight = 5

func scoreSection(s Section, terms []string) float64 {
	title := strings.ToLower(s.Title)
	text := strings.ToLower(s.Text)

	var score float64

	for _, term := range terms {
		score += float64(strings.Count(text, term))
		score += titleWeight * float64(strings.Count(title, term))
	}

	return score
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	terms := make([]string, 0, len(fields))

	for _, f := range fields {
		f = strings.Trim(f, `.,;:"'()`)
		if len(f) < 2 {
			continue
		}

		terms = append(terms, f)
	}

	return terms
}
