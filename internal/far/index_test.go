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

package far

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestParts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	part19 := `{
		"part": 19,
		"title": "Small Business Programs",
		"sections": [
			{
				"number": "19.502-2",
				"title": "Total small business set-asides",
				"text": "Each acquisition of supplies or services shall be set aside for small business participation."
			},
			{
				"number": "19.702",
				"title": "Statutory requirements",
				"text": "Subcontracting plans are required for contracts expected to exceed the threshold."
			}
		]
	}`

	part52 := `{
		"part": 52,
		"title": "Solicitation Provisions and Contract Clauses",
		"sections": [
			{
				"number": "52.219-14",
				"title": "Limitations on Subcontracting",
				"text": "The contractor will not pay more than 50 percent of the amount paid by the government for subcontracting."
			}
		]
	}`

	require.NoError(t, os.WriteFile(filepath.Join(dir, "part_19.json"), []byte(part19), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "part_52.json"), []byte(part52), 0o600))

	// Non-JSON files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o600))

	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	idx, err := Load(context.Background(), writeTestParts(t), nil)

	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	section, ok := idx.Section("52.219-14")
	require.True(t, ok)
	require.Equal(t, 52, section.Part)
	require.Equal(t, "Limitations on Subcontracting", section.Title)

	_, ok = idx.Section("99.999")
	require.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
		require.Error(t, err)
	})

	t.Run("malformed part file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "part_1.json"), []byte(`{`), 0o600))

		_, err := Load(context.Background(), dir, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "part_1.json")
	})
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	idx, err := Load(context.Background(), writeTestParts(t), nil)
	require.NoError(t, err)

	t.Run("title match ranks above body match", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("subcontracting", 10)

		require.Len(t, results, 2)
		require.Equal(t, "52.219-14", results[0].Section.Number)
		require.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("SMALL BUSINESS", 10)

		require.NotEmpty(t, results)
		require.Equal(t, "19.502-2", results[0].Section.Number)
	})

	t.Run("limit respected", func(t *testing.T) {
		t.Parallel()

		results := idx.Search("contract", 1)
		require.Len(t, results, 1)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, idx.Search("cryptocurrency", 10))
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()

		require.Nil(t, idx.Search("   ", 10))
	})
}
