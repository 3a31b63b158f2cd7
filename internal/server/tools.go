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
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fedspend/usaspending-mcp/models"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("search_awards",
		mcp.WithDescription("Search federal awards (contracts, grants, loans) by keyword, "+
			"agency, recipient and date range. Returns matching awards with amounts."),
		mcp.WithString("keywords",
			mcp.Description("Comma-separated search keywords, e.g. 'radar,surveillance'.")),
		mcp.WithString("agency",
			mcp.Description("Awarding toptier agency name, e.g. 'Department of Defense'.")),
		mcp.WithString("recipient",
			mcp.Description("Recipient name to search for.")),
		mcp.WithString("award_types",
			mcp.Description("Comma-separated award type codes, e.g. 'A,B,C,D' for contracts.")),
		mcp.WithString("start_date",
			mcp.Description("Period start, YYYY-MM-DD.")),
		mcp.WithString("end_date",
			mcp.Description("Period end, YYYY-MM-DD.")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results per page, 1-100 (default 10).")),
		mcp.WithNumber("page",
			mcp.Description("Result page, starting at 1.")),
	), s.handleSearchAwards)

	s.mcp.AddTool(mcp.NewTool("get_award",
		mcp.WithDescription("Fetch the full detail of a single award by its generated id, "+
			"e.g. 'CONT_AWD_N0001923C1234_9700_-NONE-_-NONE-'."),
		mcp.WithString("award_id",
			mcp.Required(),
			mcp.Description("Generated award id from search_awards results.")),
	), s.handleGetAward)

	s.mcp.AddTool(mcp.NewTool("get_agency_profile",
		mcp.WithDescription("Fetch the profile of a toptier agency: mission, website, "+
			"subtier count and budgetary totals."),
		mcp.WithString("toptier_code",
			mcp.Required(),
			mcp.Description("Toptier agency code, e.g. '097' for Department of Defense.")),
		mcp.WithNumber("fiscal_year",
			mcp.Description("Fiscal year to report; defaults to the current one.")),
	), s.handleAgencyProfile)

	s.mcp.AddTool(mcp.NewTool("list_agencies",
		mcp.WithDescription("List all toptier agencies with their budget authority."),
	), s.handleListAgencies)

	s.mcp.AddTool(mcp.NewTool("spending_by_category",
		mcp.WithDescription("Aggregate spending into a category such as awarding_agency, "+
			"recipient, naics or psc, optionally filtered by keywords and dates."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("One of: awarding_agency, funding_agency, recipient, naics, psc, cfda.")),
		mcp.WithString("keywords",
			mcp.Description("Comma-separated search keywords.")),
		mcp.WithString("start_date",
			mcp.Description("Period start, YYYY-MM-DD.")),
		mcp.WithString("end_date",
			mcp.Description("Period end, YYYY-MM-DD.")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum buckets to return (default 10).")),
	), s.handleSpendingByCategory)

	s.mcp.AddTool(mcp.NewTool("search_far",
		mcp.WithDescription("Keyword search over the Federal Acquisition Regulation text, "+
			"returning the most relevant sections."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Keywords to search for, e.g. 'small business set-aside'.")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum sections to return (default 5).")),
	), s.handleSearchFAR)

	s.mcp.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Show the most recent tool calls of this session with their outcomes."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return (default 20).")),
	), s.handleGetHistory)
}

func (s *Server) handleSearchAwards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := models.AwardFilters{
		Keywords:       splitCSV(req.GetString("keywords", "")),
		AwardTypeCodes: splitCSV(req.GetString("award_types", "")),
	}

	if agency := req.GetString("agency", ""); agency != "" {
		filters.Agencies = []models.AgencyFilter{{
			Type: "awarding",
			Tier: "toptier",
			Name: agency,
		}}
	}

	if recipient := req.GetString("recipient", ""); recipient != "" {
		filters.RecipientNames = []string{recipient}
	}

	period, err := timePeriod(req.GetString("start_date", ""), req.GetString("end_date", ""))
	if err != nil {
		return nil, err
	}

	if period != nil {
		filters.TimePeriods = []models.TimePeriod{*period}
	}

	resp, err := s.api.SpendingByAward(ctx, &models.SearchAwardsRequest{
		Filters: filters,
		Limit:   req.GetInt("limit", 0),
		Page:    req.GetInt("page", 0),
	})
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatAwards(resp)), nil
}

func (s *Server) handleGetAward(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	awardID, err := req.RequireString("award_id")
	if err != nil {
		return nil, err
	}

	award, err := s.api.Award(ctx, awardID)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatAward(award)), nil
}

func (s *Server) handleAgencyProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("toptier_code")
	if err != nil {
		return nil, err
	}

	overview, err := s.api.AgencyOverview(ctx, code, req.GetInt("fiscal_year", 0))
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatAgency(overview)), nil
}

func (s *Server) handleListAgencies(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.api.ToptierAgencies(ctx)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatAgencies(resp)), nil
}

func (s *Server) handleSpendingByCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return nil, err
	}

	filters := models.AwardFilters{
		Keywords: splitCSV(req.GetString("keywords", "")),
	}

	period, err := timePeriod(req.GetString("start_date", ""), req.GetString("end_date", ""))
	if err != nil {
		return nil, err
	}

	if period != nil {
		filters.TimePeriods = []models.TimePeriod{*period}
	}

	resp, err := s.api.SpendingByCategory(ctx, category, filters, req.GetInt("limit", 0))
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatCategories(resp)), nil
}

func (s *Server) handleSearchFAR(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return nil, err
	}

	results := s.index.Search(query, req.GetInt("limit", 5))

	return mcp.NewToolResultText(formatFARResults(query, results)), nil
}

func (s *Server) handleGetHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.store.Tail(ctx, sessionID(ctx), req.GetInt("limit", 20))
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatHistory(entries)), nil
}

// splitCSV splits a comma-separated argument into trimmed, non-empty parts.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// timePeriod builds a search window from optional bounds. The API requires
// both ends, so a single bound is an argument error.
func timePeriod(start, end string) (*models.TimePeriod, error) {
	if start == "" && end == "" {
		return nil, nil
	}

	if start == "" || end == "" {
		return nil, fmt.Errorf("start_date and end_date must be provided together")
	}

	return &models.TimePeriod{StartDate: start, EndDate: end}, nil
}
