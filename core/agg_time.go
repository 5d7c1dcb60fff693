package core

import (
	"sort"

	"github.com/huangsam/riskboard/schema"
)

// RecordsOverTime counts records per YYYY-MM month. Records without a
// parseable date are excluded entirely, not bucketed as Unknown. Months
// sort lexicographically ascending.
func RecordsOverTime(records []schema.Record) schema.ChartData {
	monthly := make(map[string]int)
	for i := range records {
		r := &records[i]
		if !r.IsActive || !r.HasDate() {
			continue
		}
		monthly[schema.MonthKey(r.DateCalculated)]++
	}

	months := sortedKeys(monthly)
	data := make([]float64, 0, len(months))
	for _, month := range months {
		data = append(data, float64(monthly[month]))
	}
	return schema.ChartData{
		Labels: months,
		Datasets: []schema.Dataset{{
			Label:           "Records per Month",
			Data:            data,
			BackgroundColor: schema.UniformColors("rgba(54, 162, 235, 0.6)", len(data)),
			BorderColor:     "rgba(54, 162, 235, 1)",
			BorderWidth:     2,
			Fill:            false,
		}},
	}
}

// DataEntryPatterns counts records per hour of day. Dateless records are
// excluded; hours sort ascending and label as HH:00.
func DataEntryPatterns(records []schema.Record) schema.ChartData {
	hourly := make(map[string]int)
	for i := range records {
		r := &records[i]
		if !r.IsActive || !r.HasDate() {
			continue
		}
		hourly[schema.HourKey(r.DateCalculated)]++
	}

	hours := sortedKeys(hourly)
	data := make([]float64, 0, len(hours))
	for _, hour := range hours {
		data = append(data, float64(hourly[hour]))
	}
	return schema.ChartData{
		Labels: hours,
		Datasets: []schema.Dataset{{
			Label:           "Records per Hour",
			Data:            data,
			BackgroundColor: schema.UniformColors("rgba(255, 99, 132, 0.6)", len(data)),
			BorderColor:     "rgba(255, 99, 132, 1)",
			BorderWidth:     2,
			Fill:            false,
		}},
	}
}

// RiskTrend counts records per month and risk level, one line dataset per
// fixed High/Medium/Low level over lexicographically sorted months.
func RiskTrend(records []schema.Record) schema.ChartData {
	cells := make(map[string]map[schema.RiskRating]int)
	for i := range records {
		r := &records[i]
		if !r.IsActive || !r.HasDate() {
			continue
		}
		month := schema.MonthKey(r.DateCalculated)
		row, ok := cells[month]
		if !ok {
			row = make(map[schema.RiskRating]int)
			cells[month] = row
		}
		row[riskOf(r)]++
	}

	months := make([]string, 0, len(cells))
	for month := range cells {
		months = append(months, month)
	}
	sort.Strings(months)

	return schema.ChartData{
		Labels:   months,
		Datasets: riskLevelDatasets(months, cells, true),
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
