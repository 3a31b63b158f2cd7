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

package models

// TimePeriod bounds a search to an action-date window, formatted YYYY-MM-DD.
type TimePeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AgencyFilter narrows a search to awards funded or awarded by an agency.
type AgencyFilter struct {
	Type string `json:"type"`
	Tier string `json:"tier"`
	Name string `json:"name"`
}

// AwardFilters is the filter object accepted by the spending_by_award endpoint.
// Empty fields are omitted from the request payload.
type AwardFilters struct {
	Keywords       []string       `json:"keywords,omitempty"`
	TimePeriods    []TimePeriod   `json:"time_period,omitempty"`
	AwardTypeCodes []string       `json:"award_type_codes,omitempty"`
	Agencies       []AgencyFilter `json:"agencies,omitempty"`
	RecipientNames []string       `json:"recipient_search_text,omitempty"`
	NAICSCodes     []string       `json:"naics_codes,omitempty"`
	PSCCodes       []string       `json:"psc_codes,omitempty"`
}

// SearchAwardsRequest is the payload for the spending_by_award endpoint.
type SearchAwardsRequest struct {
	Filters AwardFilters `json:"filters"`
	Fields  []string     `json:"fields"`
	Sort    string       `json:"sort,omitempty"`
	Order   string       `json:"order,omitempty"`
	Limit   int          `json:"limit,omitempty"`
	Page    int          `json:"page,omitempty"`
}

// AwardResult is one row of a spending_by_award response.
type AwardResult struct {
	InternalID     int64   `json:"internal_id"`
	GeneratedID    string  `json:"generated_internal_id"`
	AwardID        string  `json:"Award ID"`
	RecipientName  string  `json:"Recipient Name"`
	AwardAmount    float64 `json:"Award Amount"`
	AwardingAgency string  `json:"Awarding Agency"`
	StartDate      string  `json:"Start Date"`
	EndDate        string  `json:"End Date"`
	Description    string  `json:"Description"`
}

// PageMetadata reports paging state for list responses.
type PageMetadata struct {
	Page     int  `json:"page"`
	HasNext  bool `json:"hasNext"`
	LastPage int  `json:"last_record_sort_value,omitempty"`
}

// SearchAwardsResponse is the body of a spending_by_award response.
type SearchAwardsResponse struct {
	Results      []AwardResult `json:"results"`
	PageMetadata PageMetadata  `json:"page_metadata"`
	Limit        int           `json:"limit"`
}
