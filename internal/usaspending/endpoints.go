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

package usaspending

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fedspend/usaspending-mcp/models"
)

// defaultAwardFields is the column set requested from spending_by_award when
// the caller does not name one. The endpoint rejects an empty field list.
var defaultAwardFields = []string{
	"Award ID",
	"Recipient Name",
	"Award Amount",
	"Awarding Agency",
	"Start Date",
	"End Date",
	"Description",
}

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// SpendingByAward searches awards matching the request filters.
func (c *Client) SpendingByAward(
	ctx context.Context, req *models.SearchAwardsRequest,
) (*models.SearchAwardsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("search request is required")
	}

	if len(req.Fields) == 0 {
		req.Fields = defaultAwardFields
	}

	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}

	if req.Limit > maxSearchLimit {
		req.Limit = maxSearchLimit
	}

	var resp models.SearchAwardsResponse
	if err := c.post(ctx, "/api/v2/search/spending_by_award/", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Award fetches the detail record for a generated award id, e.g.
// "CONT_AWD_75H70423D00037_7505_-NONE-_-NONE-".
func (c *Client) Award(ctx context.Context, generatedID string) (*models.Award, error) {
	if generatedID == "" {
		return nil, fmt.Errorf("award id is required")
	}

	var resp models.Award

	path := fmt.Sprintf("/api/v2/awards/%s/", url.PathEscape(generatedID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// AgencyOverview fetches the profile of a toptier agency by its code, e.g.
// "097" for the Department of Defense. A zero fiscalYear selects the
// API-side default of the current fiscal year.
func (c *Client) AgencyOverview(
	ctx context.Context, toptierCode string, fiscalYear int,
) (*models.AgencyOverview, error) {
	if toptierCode == "" {
		return nil, fmt.Errorf("toptier agency code is required")
	}

	path := fmt.Sprintf("/api/v2/agency/%s/", url.PathEscape(toptierCode))
	if fiscalYear > 0 {
		path = fmt.Sprintf("%s?fiscal_year=%d", path, fiscalYear)
	}

	var resp models.AgencyOverview
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ToptierAgencies lists all toptier agencies with their budget totals.
func (c *Client) ToptierAgencies(ctx context.Context) (*models.ToptierAgenciesResponse, error) {
	var resp models.ToptierAgenciesResponse
	if err := c.get(ctx, "/api/v2/references/toptier_agencies/", &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// SpendingByCategory aggregates spending matching filters into the named
// category, e.g. "awarding_agency", "recipient", "naics" or "psc".
func (c *Client) SpendingByCategory(
	ctx context.Context, category string, filters models.AwardFilters, limit int,
) (*models.SpendingByCategoryResponse, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	payload := struct {
		Filters models.AwardFilters `json:"filters"`
		Limit   int                 `json:"limit"`
	}{
		Filters: filters,
		Limit:   limit,
	}

	var resp models.SpendingByCategoryResponse

	path := fmt.Sprintf("/api/v2/search/spending_by_category/%s/", url.PathEscape(category))
	if err := c.post(ctx, path, &payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
