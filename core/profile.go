// Package core has core logic for aggregation, ranking, element
// resolution and chart filtering.
package core

import (
	"github.com/huangsam/riskboard/schema"
)

// profileSet accumulates PersonProfile values in record encounter order.
type profileSet struct {
	keys     []string
	profiles map[string]*schema.PersonProfile
}

func newProfileSet() *profileSet {
	return &profileSet{profiles: make(map[string]*schema.PersonProfile)}
}

// observe folds one record into its person's profile, creating the
// profile on first sight.
func (ps *profileSet) observe(r *schema.Record) *schema.PersonProfile {
	key := r.PersonKey()
	p, ok := ps.profiles[key]
	if !ok {
		p = &schema.PersonProfile{
			MemberID:      r.MemberID,
			DependentCode: r.DependentCode,
		}
		ps.profiles[key] = p
		ps.keys = append(ps.keys, key)
	}

	if !p.HasDisease(r.DiseaseProtocol) {
		p.Diseases = append(p.Diseases, r.DiseaseProtocol)
	}
	if !p.HasRisk(r.RiskRating) {
		p.RiskLevels = append(p.RiskLevels, r.RiskRating)
	}
	hasCalc := false
	for _, c := range p.CalcTypes {
		if c == r.CalculationType {
			hasCalc = true
			break
		}
	}
	if !hasCalc {
		p.CalcTypes = append(p.CalcTypes, r.CalculationType)
	}
	if r.DateCalculated.After(p.LatestDate) {
		p.LatestDate = r.DateCalculated
	}
	p.Events = append(p.Events, schema.RecordEvent{
		Disease:         r.DiseaseProtocol,
		Risk:            r.RiskRating,
		CalculationType: r.CalculationType,
		Date:            r.DateCalculated,
	})
	return p
}

func (ps *profileSet) get(key string) *schema.PersonProfile {
	return ps.profiles[key]
}

// ordered returns all profiles in encounter order.
func (ps *profileSet) ordered() []*schema.PersonProfile {
	out := make([]*schema.PersonProfile, 0, len(ps.keys))
	for _, key := range ps.keys {
		out = append(out, ps.profiles[key])
	}
	return out
}

// BuildProfiles builds one PersonProfile per person from the active
// records, preserving record encounter order. The input is never mutated.
func BuildProfiles(records []schema.Record) []*schema.PersonProfile {
	ps := newProfileSet()
	for i := range records {
		if !records[i].IsActive {
			continue
		}
		ps.observe(&records[i])
	}
	return ps.ordered()
}

// buildProfileSet is the map-backed variant for aggregations that need
// per-key lookups while iterating records a second time.
func buildProfileSet(records []schema.Record) *profileSet {
	ps := newProfileSet()
	for i := range records {
		if !records[i].IsActive {
			continue
		}
		ps.observe(&records[i])
	}
	return ps
}
