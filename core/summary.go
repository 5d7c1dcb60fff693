package core

import (
	"github.com/huangsam/riskboard/schema"
)

// Summarize computes dataset-wide counts across all records, active and
// inactive. People are deduplicated by composite key.
func Summarize(records []schema.Record) schema.DataSummary {
	uniquePeople := make(map[string]struct{})
	uniqueProtocols := make(map[string]struct{})
	highRiskPeople := make(map[string]struct{})
	activePeople := make(map[string]struct{})
	inactivePeople := make(map[string]struct{})

	for i := range records {
		r := &records[i]
		key := r.PersonKey()
		uniquePeople[key] = struct{}{}
		if r.DiseaseProtocol != "" {
			uniqueProtocols[r.DiseaseProtocol] = struct{}{}
		}
		if r.RiskRating == schema.HighRisk {
			highRiskPeople[key] = struct{}{}
		}
		if r.IsActive {
			activePeople[key] = struct{}{}
		} else {
			inactivePeople[key] = struct{}{}
		}
	}

	return schema.DataSummary{
		TotalRecords:    len(records),
		TotalMembers:    len(uniquePeople),
		TotalProtocols:  len(uniqueProtocols),
		HighRiskCases:   len(highRiskPeople),
		ActiveMembers:   len(activePeople),
		InactiveMembers: len(inactivePeople),
	}
}
