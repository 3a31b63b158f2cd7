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

// AwardRecipient identifies the entity an award was made to.
type AwardRecipient struct {
	Name         string `json:"recipient_name"`
	UEI          string `json:"recipient_uei"`
	BusinessType string `json:"business_categories_name,omitempty"`
}

// AwardAgency identifies an awarding or funding agency on an award.
type AwardAgency struct {
	ID           int64  `json:"id"`
	ToptierName  string `json:"toptier_agency_name"`
	SubtierName  string `json:"subtier_agency_name"`
	OfficeName   string `json:"office_agency_name,omitempty"`
	ToptierCode  string `json:"toptier_code,omitempty"`
	AbbrevName   string `json:"toptier_agency_abbreviation,omitempty"`
	HasProfileV2 bool   `json:"has_agency_page,omitempty"`
}

// PeriodOfPerformance is the performance window of an award.
type PeriodOfPerformance struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	LastModified   string `json:"last_modified_date,omitempty"`
	PotentialEnd   string `json:"potential_end_date,omitempty"`
	BaseObligation string `json:"date_signed,omitempty"`
}

// Award is the detail payload for a single award.
type Award struct {
	ID                  int64               `json:"id"`
	GeneratedID         string              `json:"generated_unique_award_id"`
	PIID                string              `json:"piid,omitempty"`
	FAIN                string              `json:"fain,omitempty"`
	Category            string              `json:"category"`
	Type                string              `json:"type"`
	TypeDescription     string              `json:"type_description"`
	Description         string              `json:"description"`
	TotalObligation     float64             `json:"total_obligation"`
	BaseAndAllOptions   float64             `json:"base_and_all_options,omitempty"`
	Recipient           AwardRecipient      `json:"recipient"`
	AwardingAgency      AwardAgency         `json:"awarding_agency"`
	FundingAgency       AwardAgency         `json:"funding_agency"`
	PeriodOfPerformance PeriodOfPerformance `json:"period_of_performance"`
}
