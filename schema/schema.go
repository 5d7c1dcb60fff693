// Package schema defines shared data structures for riskboard.
package schema

import "time"

// Record is one risk-calculation event row from the input dataset.
// Records are immutable once loaded; a new upload replaces the whole list.
type Record struct {
	// MemberID identifies the member the record belongs to
	MemberID string `json:"memberId"`

	// DependentCode distinguishes dependants under the same member
	DependentCode string `json:"dependentCode"`

	// DiseaseProtocol is the disease protocol name ("Unknown" when absent)
	DiseaseProtocol string `json:"diseaseProtocol"`

	// RiskRating is the risk level assigned by the calculation
	RiskRating RiskRating `json:"riskRating"`

	// CalculationType is the risk calculation method ("Unknown" when absent)
	CalculationType string `json:"riskCalculationType"`

	// DateCalculated is when the calculation ran (zero when unparseable)
	DateCalculated time.Time `json:"dateCalculated"`

	// IsActive marks whether the record participates in aggregation
	IsActive bool `json:"isActive"`

	// StatusReason is provenance for the active flag
	StatusReason string `json:"activeStatusReason,omitempty"`

	// StatusSource is the system that set the active flag
	StatusSource string `json:"activeStatusSource,omitempty"`
}

// PersonKey returns the composite identity for the record's person.
// A "person" is a unique (memberId, dependentCode) pair.
func (r *Record) PersonKey() string {
	return r.MemberID + "-" + r.DependentCode
}

// HasDate reports whether the record carries a parseable calculation date.
func (r *Record) HasDate() bool {
	return !r.DateCalculated.IsZero()
}

// RecordEvent is one (disease, risk, calcType, date) observation inside a
// PersonProfile, in record encounter order.
type RecordEvent struct {
	Disease         string     `json:"disease"`
	Risk            RiskRating `json:"risk"`
	CalculationType string     `json:"calcType"`
	Date            time.Time  `json:"date"`
}

// PersonProfile aggregates one person's active records. Profiles are
// rebuilt on every aggregation call and never persisted.
type PersonProfile struct {
	MemberID      string `json:"memberId"`
	DependentCode string `json:"dependentCode"`

	// Diseases is the person's distinct disease set, in encounter order
	Diseases []string `json:"diseases"`

	// RiskLevels is the distinct set of risk ratings seen, in encounter order
	RiskLevels []RiskRating `json:"riskLevels"`

	// CalcTypes is the distinct set of calculation types, in encounter order
	CalcTypes []string `json:"calcTypes"`

	// LatestDate is the max date across the person's records
	LatestDate time.Time `json:"latestDate"`

	// Events is the full ordered list of observations
	Events []RecordEvent `json:"records"`
}

// Key returns the person's composite identity.
func (p *PersonProfile) Key() string {
	return p.MemberID + "-" + p.DependentCode
}

// HasDisease reports whether the profile's distinct disease set contains d.
func (p *PersonProfile) HasDisease(d string) bool {
	for _, disease := range p.Diseases {
		if disease == d {
			return true
		}
	}
	return false
}

// HasRisk reports whether the profile saw the given risk rating.
func (p *PersonProfile) HasRisk(r RiskRating) bool {
	for _, risk := range p.RiskLevels {
		if risk == r {
			return true
		}
	}
	return false
}

// RankedMember is a high-risk person with priority scoring applied.
type RankedMember struct {
	PersonProfile

	// PriorityScore weighs risk severity against disease burden
	PriorityScore float64 `json:"priorityScore"`

	// DiseaseCount is the size of the distinct disease set
	DiseaseCount int `json:"diseaseCount"`

	// HighestRisk is the highest-severity rating present
	HighestRisk RiskRating `json:"highestRisk"`

	// Rank is the 1-based position after sorting
	Rank int `json:"rank"`
}

// DataSummary holds dataset-wide counts. People are counted once per
// composite key, not once per record.
type DataSummary struct {
	TotalRecords    int `json:"totalRecords"`
	TotalMembers    int `json:"totalMembers"`
	TotalProtocols  int `json:"totalProtocols"`
	HighRiskCases   int `json:"highRiskCases"`
	ActiveMembers   int `json:"activeMembers"`
	InactiveMembers int `json:"inactiveMembers"`
}
