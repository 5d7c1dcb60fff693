package core

import (
	"github.com/huangsam/riskboard/schema"
)

// RiskDistribution counts distinct people per risk rating. A person who
// holds records at two ratings contributes to both buckets.
func RiskDistribution(records []schema.Record) schema.ChartData {
	peoplePerRisk := make(map[string]map[string]struct{})
	t := newTally()
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		risk := string(riskOf(r))
		people, ok := peoplePerRisk[risk]
		if !ok {
			people = make(map[string]struct{})
			peoplePerRisk[risk] = people
			t.add(risk, 0)
		}
		people[r.PersonKey()] = struct{}{}
	}
	for _, risk := range t.keys {
		t.counts[risk] = len(peoplePerRisk[risk])
	}
	return t.singleSeries(true)
}

// RiskBreakdown is the doughnut companion to RiskDistribution and shares
// its distinct-people semantics.
func RiskBreakdown(records []schema.Record) schema.ChartData {
	return RiskDistribution(records)
}

// HighRiskAnalysis counts High Risk records per calculation type, sorted
// by frequency descending.
func HighRiskAnalysis(records []schema.Record) schema.ChartData {
	t := newTally()
	for i := range records {
		r := &records[i]
		if !r.IsActive || riskOf(r) != schema.HighRisk {
			continue
		}
		t.add(calcTypeOf(r), 1)
	}
	return singleSeriesFromPairs(t.topN(0), false)
}

// RiskByCalcType cross-tabulates calculation types against the fixed
// High/Medium/Low risk levels, one dataset per level.
func RiskByCalcType(records []schema.Record) schema.ChartData {
	cells := make(map[string]map[schema.RiskRating]int)
	labels := []string{}
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		calcType := calcTypeOf(r)
		row, ok := cells[calcType]
		if !ok {
			row = make(map[schema.RiskRating]int)
			cells[calcType] = row
			labels = append(labels, calcType)
		}
		row[riskOf(r)]++
	}
	return schema.ChartData{
		Labels:   labels,
		Datasets: riskLevelDatasets(labels, cells, false),
	}
}

// RiskPerProtocol cross-tabulates disease protocols against the fixed
// High/Medium/Low risk levels, one dataset per level.
func RiskPerProtocol(records []schema.Record) schema.ChartData {
	cells := make(map[string]map[schema.RiskRating]int)
	labels := []string{}
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		protocol := diseaseOf(r)
		row, ok := cells[protocol]
		if !ok {
			row = make(map[schema.RiskRating]int)
			cells[protocol] = row
			labels = append(labels, protocol)
		}
		row[riskOf(r)]++
	}
	return schema.ChartData{
		Labels:   labels,
		Datasets: riskLevelDatasets(labels, cells, false),
	}
}
