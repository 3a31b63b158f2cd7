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
	"fmt"
	"strings"
	"time"

	"github.com/fedspend/usaspending-mcp/internal/far"
	"github.com/fedspend/usaspending-mcp/internal/history"
	"github.com/fedspend/usaspending-mcp/models"
)

const textSnippetLimit = 400

func formatAwards(resp *models.SearchAwardsResponse) string {
	if len(resp.Results) == 0 {
		return "No awards matched the given filters."
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Found %d award(s) (page %d):\n",
		len(resp.Results), max(resp.PageMetadata.Page, 1))

	for i, award := range resp.Results {
		fmt.Fprintf(&b, "\n%d. %s — %s\n", i+1, award.AwardID, award.RecipientName)
		fmt.Fprintf(&b, "   Amount: %s | Agency: %s\n",
			formatMoney(award.AwardAmount), award.AwardingAgency)

		if award.StartDate != "" || award.EndDate != "" {
			fmt.Fprintf(&b, "   Period: %s to %s\n", award.StartDate, award.EndDate)
		}

		if award.Description != "" {
			fmt.Fprintf(&b, "   %s\n", snippet(award.Description))
		}

		if award.GeneratedID != "" {
			fmt.Fprintf(&b, "   id: %s\n", award.GeneratedID)
		}
	}

	if resp.PageMetadata.HasNext {
		b.WriteString("\nMore results available on the next page.")
	}

	return b.String()
}

func formatAward(award *models.Award) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", award.GeneratedID, award.TypeDescription)
	fmt.Fprintf(&b, "Recipient: %s", award.Recipient.Name)

	if award.Recipient.UEI != "" {
		fmt.Fprintf(&b, " (UEI %s)", award.Recipient.UEI)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total obligation: %s\n", formatMoney(award.TotalObligation))
	fmt.Fprintf(&b, "Awarding agency: %s / %s\n",
		award.AwardingAgency.ToptierName, award.AwardingAgency.SubtierName)

	if award.FundingAgency.ToptierName != "" {
		fmt.Fprintf(&b, "Funding agency: %s\n", award.FundingAgency.ToptierName)
	}

	fmt.Fprintf(&b, "Period of performance: %s to %s\n",
		award.PeriodOfPerformance.StartDate, award.PeriodOfPerformance.EndDate)

	if award.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", snippet(award.Description))
	}

	return b.String()
}

func formatAgency(overview *models.AgencyOverview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s), toptier code %s\n",
		overview.Name, overview.Abbreviation, overview.ToptierCode)

	if overview.MissionStatement != "" {
		fmt.Fprintf(&b, "Mission: %s\n", snippet(overview.MissionStatement))
	}

	if overview.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", overview.Website)
	}

	fmt.Fprintf(&b, "Fiscal year: %d | Subtier agencies: %d\n",
		overview.FiscalYear, overview.SubtierCount)

	if overview.TotalObligations > 0 {
		fmt.Fprintf(&b, "Total obligations: %s\n", formatMoney(overview.TotalObligations))
	}

	return b.String()
}

func formatAgencies(resp *models.ToptierAgenciesResponse) string {
	if len(resp.Results) == 0 {
		return "No agencies returned."
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%d toptier agencies:\n", len(resp.Results))

	for _, agency := range resp.Results {
		fmt.Fprintf(&b, "\n%s [%s] (%s)\n",
			agency.AgencyName, agency.ToptierCode, agency.Abbreviation)
		fmt.Fprintf(&b, "  Budget authority: %s (%.2f%% of total)\n",
			formatMoney(agency.BudgetAuthority), agency.PercentOfBudget)
	}

	return b.String()
}

func formatCategories(resp *models.SpendingByCategoryResponse) string {
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No spending found for category %q.", resp.Category)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Top spending by %s:\n", resp.Category)

	for i, result := range resp.Results {
		fmt.Fprintf(&b, "%d. %s", i+1, result.Name)

		if result.Code != "" {
			fmt.Fprintf(&b, " [%s]", result.Code)
		}

		fmt.Fprintf(&b, ": %s\n", formatMoney(result.Amount))
	}

	return b.String()
}

func formatFARResults(query string, results []far.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No FAR sections matched %q.", query)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "FAR sections matching %q:\n", query)

	for _, r := range results {
		fmt.Fprintf(&b, "\nFAR %s — %s (part %d)\n",
			r.Section.Number, r.Section.Title, r.Section.Part)
		fmt.Fprintf(&b, "%s\n", snippet(r.Section.Text))
	}

	return b.String()
}

func formatHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return "No tool calls recorded for this session."
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Last %d tool call(s), newest first:\n", len(entries))

	for _, entry := range entries {
		fmt.Fprintf(&b, "\n[%s] %s — %s (%s)\n",
			entry.Time.Format("2006-01-02 15:04:05"),
			entry.Tool, entry.Outcome, entry.Elapsed.Round(time.Millisecond))

		if entry.Args != "" && entry.Args != "{}" {
			fmt.Fprintf(&b, "  args: %s\n", entry.Args)
		}

		if entry.Detail != "" {
			fmt.Fprintf(&b, "  detail: %s\n", entry.Detail)
		}
	}

	return b.String()
}

func formatMoney(amount float64) string {
	switch {
	case amount >= 1e9:
		return fmt.Sprintf("$%.2fB", amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("$%.2fM", amount/1e6)
	case amount >= 1e3:
		return fmt.Sprintf("$%.2fK", amount/1e3)
	default:
		return fmt.Sprintf("$%.2f", amount)
	}
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	if len(text) <= textSnippetLimit {
		return text
	}

	return text[:textSnippetLimit] + "…"
}
