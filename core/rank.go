package core

import (
	"sort"

	"github.com/huangsam/riskboard/schema"
)

// DefaultRankLimit caps ranked output when no limit is given.
const DefaultRankLimit = 50

// RankOptions controls high-risk member ranking.
type RankOptions struct {
	Filter schema.RankFilter
	Sort   schema.RankSort
	Limit  int
}

// RankMembers builds per-person profiles from the active records, keeps
// only people with at least one High Risk record, scores them, and
// returns them ranked. The eligibility gate applies regardless of the
// Filter option. This function is total: absent fields degrade to
// Unknown/zero and it never fails.
func RankMembers(records []schema.Record, opts RankOptions) []schema.RankedMember {
	if opts.Limit <= 0 {
		opts.Limit = DefaultRankLimit
	}

	profiles := BuildProfiles(records)

	members := make([]schema.RankedMember, 0, len(profiles))
	for _, p := range profiles {
		switch opts.Filter {
		case schema.MultipleDiseases:
			if len(p.Diseases) < 3 {
				continue
			}
		case schema.SingleDisease:
			if len(p.Diseases) != 1 {
				continue
			}
		}
		if !p.HasRisk(schema.HighRisk) {
			continue
		}
		members = append(members, scoreMember(p))
	}

	sortMembers(members, opts.Sort)

	for i := range members {
		members[i].Rank = i + 1
	}
	if len(members) > opts.Limit {
		members = members[:opts.Limit]
	}
	return members
}

// scoreMember computes the priority score for one eligible profile.
// The risk score sums 3/2/1 per distinct risk level present (1 for
// unknown levels), not per record.
func scoreMember(p *schema.PersonProfile) schema.RankedMember {
	riskScore := 0
	for _, level := range p.RiskLevels {
		riskScore += schema.SeverityScore(level)
	}

	diseaseCount := len(p.Diseases)
	score := float64(riskScore)*2 + float64(diseaseCount)*1.5
	if diseaseCount >= 3 {
		score += 2
	}

	return schema.RankedMember{
		PersonProfile: *p,
		PriorityScore: score,
		DiseaseCount:  diseaseCount,
		HighestRisk:   schema.HighestRisk(p.RiskLevels),
	}
}

func sortMembers(members []schema.RankedMember, order schema.RankSort) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := &members[i], &members[j]
		switch order {
		case schema.RiskAsc:
			return a.PriorityScore < b.PriorityScore
		case schema.DiseasesDesc:
			return a.DiseaseCount > b.DiseaseCount
		case schema.DiseasesAsc:
			return a.DiseaseCount < b.DiseaseCount
		default: // RiskDesc
			return a.PriorityScore > b.PriorityScore
		}
	})
}
