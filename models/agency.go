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

// AgencyOverview is the profile payload for a toptier agency.
type AgencyOverview struct {
	FiscalYear        int     `json:"fiscal_year"`
	ToptierCode       string  `json:"toptier_code"`
	Name              string  `json:"name"`
	Abbreviation      string  `json:"abbreviation"`
	AgencyID          int64   `json:"agency_id"`
	MissionStatement  string  `json:"mission"`
	Website           string  `json:"website"`
	SubtierCount      int     `json:"subtier_agency_count"`
	DefCodesCount     int     `json:"def_codes,omitempty"`
	TotalObligations  float64 `json:"total_obligations,omitempty"`
	TransactionCount  int64   `json:"transaction_count,omitempty"`
	NewAwardCount     int64   `json:"new_award_count,omitempty"`
	CongressionalCode string  `json:"congressional_justification_url,omitempty"`
}

// ToptierAgency is one row of the toptier agency reference list.
type ToptierAgency struct {
	AgencyID         int64   `json:"agency_id"`
	ToptierCode      string  `json:"toptier_code"`
	AgencyName       string  `json:"agency_name"`
	Abbreviation     string  `json:"abbreviation"`
	BudgetAuthority  float64 `json:"budget_authority_amount"`
	PercentOfBudget  float64 `json:"percentage_of_total_budget_authority"`
	ObligatedAmount  float64 `json:"obligated_amount"`
	OutlayAmount     float64 `json:"outlay_amount"`
	CurrentFY        int     `json:"active_fy,string,omitempty"`
	CurrentFQ        int     `json:"active_fq,string,omitempty"`
	CongressionalURL string  `json:"congressional_justification_url,omitempty"`
}

// ToptierAgenciesResponse is the body of the toptier agency reference endpoint.
type ToptierAgenciesResponse struct {
	Results []ToptierAgency `json:"results"`
}

// CategoryResult is one bucket of a spending_by_category response.
type CategoryResult struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// SpendingByCategoryResponse is the body of a spending_by_category response.
type SpendingByCategoryResponse struct {
	Category     string           `json:"category"`
	Results      []CategoryResult `json:"results"`
	Limit        int              `json:"limit"`
	PageMetadata PageMetadata     `json:"page_metadata"`
}
