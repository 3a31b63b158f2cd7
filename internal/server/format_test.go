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

package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fedspend/usaspending-mcp/internal/far"
	"github.com/fedspend/usaspending-mcp/internal/history"
	"github.com/fedspend/usaspending-mcp/models"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 12.5, want: "$12.50"},
		{amount: 4_200, want: "$4.20K"},
		{amount: 7_500_000, want: "$7.50M"},
		{amount: 1_250_000_000, want: "$1.25B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.amount))
	}
}

func TestFormatAwards(t *testing.T) {
	t.Parallel()

	assert.Contains(t,
		formatAwards(&models.SearchAwardsResponse{}),
		"No awards matched")

	resp := &models.SearchAwardsResponse{
		Results: []models.AwardResult{
			{
				AwardID:        "W912DY-24-C-0001",
				RecipientName:  "ACME CORP",
				AwardAmount:    2_500_000,
				AwardingAgency: "Department of Defense",
				GeneratedID:    "CONT_AWD_X",
				Description:    "radar maintenance",
			},
		},
		PageMetadata: models.PageMetadata{Page: 1, HasNext: true},
	}

	out := formatAwards(resp)

	assert.Contains(t, out, "W912DY-24-C-0001")
	assert.Contains(t, out, "ACME CORP")
	assert.Contains(t, out, "$2.50M")
	assert.Contains(t, out, "CONT_AWD_X")
	assert.Contains(t, out, "next page")
}

func TestFormatFARResults(t *testing.T) {
	t.Parallel()

	assert.Contains(t, formatFARResults("x", nil), "No FAR sections")

	out := formatFARResults("subcontracting", []far.Result{
		{
			Section: far.Section{
				Part:   52,
				Number: "52.219-14",
				Title:  "Limitations on Subcontracting",
				Text:   strings.Repeat("limits apply ", 60),
			},
			Score: 6,
		},
	})

	assert.Contains(t, out, "FAR 52.219-14")
	assert.Contains(t, out, "…", "long section text must be truncated")
}

func TestFormatHistory(t *testing.T) {
	t.Parallel()

	assert.Contains(t, formatHistory(nil), "No tool calls recorded")

	entry := history.NewEntry("s1", "search_awards", `{"keywords":"radar"}`)
	entry.Outcome = history.OutcomeUnavailable
	entry.Detail = "failed after 3 attempt(s)"

	out := formatHistory([]history.Entry{entry})

	assert.Contains(t, out, "search_awards")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "failed after 3 attempt(s)")
}
