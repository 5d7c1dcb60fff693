package core

import (
	"github.com/huangsam/riskboard/schema"
)

// CalculationTypesPerRisk cross-tabulates risk ratings against
// calculation types, one dataset per calculation type, zero-filled.
func CalculationTypesPerRisk(records []schema.Record) schema.ChartData {
	ct := newCrossTab()
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		ct.add(string(riskOf(r)), calcTypeOf(r))
	}
	return ct.chart()
}

// CalculationTypesPerDisease cross-tabulates disease protocols against
// calculation types, one dataset per calculation type, zero-filled.
func CalculationTypesPerDisease(records []schema.Record) schema.ChartData {
	ct := newCrossTab()
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		ct.add(diseaseOf(r), calcTypeOf(r))
	}
	return ct.chart()
}

// CommonCalcTypes counts records per calculation type, returning the top
// 10 by frequency.
func CommonCalcTypes(records []schema.Record) schema.ChartData {
	t := newTally()
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		t.add(calcTypeOf(r), 1)
	}
	return singleSeriesFromPairs(t.topN(10), false)
}

// CalcMethodEffectiveness scores each calculation type by the share of
// its records rated High Risk, as a percentage. Types with zero total
// yield 0 rather than a division error.
func CalcMethodEffectiveness(records []schema.Record) schema.ChartData {
	type stats struct {
		total, highRisk int
	}
	methods := make(map[string]*stats)
	order := []string{}
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		calcType := calcTypeOf(r)
		s, ok := methods[calcType]
		if !ok {
			s = &stats{}
			methods[calcType] = s
			order = append(order, calcType)
		}
		s.total++
		if riskOf(r) == schema.HighRisk {
			s.highRisk++
		}
	}

	data := make([]float64, 0, len(order))
	for _, calcType := range order {
		s := methods[calcType]
		pct := 0.0
		if s.total > 0 {
			pct = float64(s.highRisk) / float64(s.total) * 100
		}
		data = append(data, pct)
	}
	return schema.ChartData{
		Labels: order,
		Datasets: []schema.Dataset{{
			Label:           "High Risk Percentage (%)",
			Data:            data,
			BackgroundColor: schema.GenerateColors(len(order), false),
		}},
	}
}
