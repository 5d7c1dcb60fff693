package core

import (
	"sort"

	"github.com/huangsam/riskboard/schema"
)

// ChartHandler computes one chart-ready summary from the record list.
// Handlers filter to active records internally, never mutate the input,
// and return empty (not nil-panicking) structures for empty input.
type ChartHandler func(records []schema.Record) schema.ChartData

// chartHandlers is the enumerated chart catalog. Lookups for identifiers
// outside this table fail closed instead of dispatching dynamically.
var chartHandlers = map[schema.ChartID]ChartHandler{
	schema.DiseaseChart:                  DiseaseDistribution,
	schema.RiskChart:                     RiskDistribution,
	schema.RiskBreakdownChart:            RiskBreakdown,
	schema.PeoplePerConditionChart:       PeoplePerCondition,
	schema.MultipleDiseasesChart:         MultipleDiseasesHistogram,
	schema.MultipleDiseasesDetailedChart: MultipleDiseasesDetailed,
	schema.DiseaseCombinationsChart:      DiseaseCombinations,
	schema.MultipleDiseaseRiskChart:      MultipleDiseaseRisk,
	schema.MultipleDiseaseSeverityChart:  MultipleDiseaseSeverity,
	schema.CalculationTypeChart:          CalculationTypesPerRisk,
	schema.CalcTypePerDiseaseChart:       CalculationTypesPerDisease,
	schema.RecordsOverTimeChart:          RecordsOverTime,
	schema.CommonCalcTypesChart:          CommonCalcTypes,
	schema.DiseaseCooccurrenceChart:      DiseaseCooccurrence,
	schema.RiskByCalcTypeChart:           RiskByCalcType,
	schema.ProtocolUsageChart:            ProtocolUsage,
	schema.HighRiskAnalysisChart:         HighRiskAnalysis,
	schema.DataEntryPatternsChart:        DataEntryPatterns,
	schema.RiskTrendChart:                RiskTrend,
	schema.CalcEffectivenessChart:        CalcMethodEffectiveness,
	schema.DiseaseSeverityChart:          DiseaseSeverity,
	schema.RiskPerProtocolChart:          RiskPerProtocol,
	schema.HighRiskDiabetesChart:         HighRiskDiabetes,
}

// BuildChart computes the chart for the given identifier. The boolean is
// false for identifiers outside the catalog.
func BuildChart(id schema.ChartID, records []schema.Record) (schema.ChartData, bool) {
	handler, ok := chartHandlers[id]
	if !ok {
		return schema.ChartData{}, false
	}
	return handler(records), true
}

// tally counts occurrences per label while preserving first-encounter
// order, matching the grouping order charts display in.
type tally struct {
	keys   []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key] += n
}

func (t *tally) get(key string) int {
	return t.counts[key]
}

// pair is one (label, count) entry for sorted views of a tally.
type pair struct {
	label string
	count int
}

// topN returns up to n entries by count descending. The sort is stable so
// ties keep encounter order.
func (t *tally) topN(n int) []pair {
	pairs := make([]pair, 0, len(t.keys))
	for _, key := range t.keys {
		pairs = append(pairs, pair{label: key, count: t.counts[key]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].count > pairs[j].count
	})
	if n > 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// singleSeries materializes a tally into a single-series chart in
// encounter order.
func (t *tally) singleSeries(isRiskChart bool) schema.ChartData {
	labels := make([]string, 0, len(t.keys))
	data := make([]float64, 0, len(t.keys))
	for _, key := range t.keys {
		labels = append(labels, key)
		data = append(data, float64(t.counts[key]))
	}
	return schema.ChartData{
		Labels:          labels,
		Data:            data,
		BackgroundColor: schema.GenerateColors(len(labels), isRiskChart),
	}
}

// singleSeriesFromPairs materializes sorted (label, count) entries into a
// single-series chart.
func singleSeriesFromPairs(pairs []pair, isRiskChart bool) schema.ChartData {
	labels := make([]string, 0, len(pairs))
	data := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		labels = append(labels, p.label)
		data = append(data, float64(p.count))
	}
	return schema.ChartData{
		Labels:          labels,
		Data:            data,
		BackgroundColor: schema.GenerateColors(len(labels), isRiskChart),
	}
}

// crossTab is a two-level grouping: primary labels on the axis, one
// dataset per secondary category. Both levels keep encounter order.
type crossTab struct {
	primaryKeys   []string
	secondaryKeys []string
	cells         map[string]map[string]int
}

func newCrossTab() *crossTab {
	return &crossTab{cells: make(map[string]map[string]int)}
}

func (ct *crossTab) add(primary, secondary string) {
	row, ok := ct.cells[primary]
	if !ok {
		row = make(map[string]int)
		ct.cells[primary] = row
		ct.primaryKeys = append(ct.primaryKeys, primary)
	}
	if _, ok := row[secondary]; !ok {
		found := false
		for _, key := range ct.secondaryKeys {
			if key == secondary {
				found = true
				break
			}
		}
		if !found {
			ct.secondaryKeys = append(ct.secondaryKeys, secondary)
		}
	}
	row[secondary]++
}

// chart builds one dataset per secondary category with zero-filled cells.
func (ct *crossTab) chart() schema.ChartData {
	colors := schema.GenerateColors(len(ct.secondaryKeys), false)
	datasets := make([]schema.Dataset, 0, len(ct.secondaryKeys))
	for i, secondary := range ct.secondaryKeys {
		data := make([]float64, 0, len(ct.primaryKeys))
		for _, primary := range ct.primaryKeys {
			data = append(data, float64(ct.cells[primary][secondary]))
		}
		datasets = append(datasets, schema.Dataset{
			Label:           secondary,
			Data:            data,
			BackgroundColor: schema.UniformColors(colors[i], len(data)),
		})
	}
	return schema.ChartData{Labels: ct.primaryKeys, Datasets: datasets}
}

// riskLevelDatasets builds one dataset per known risk level, in the fixed
// High/Medium/Low order, zero-filling cells with no observations.
func riskLevelDatasets(labels []string, cells map[string]map[schema.RiskRating]int, line bool) []schema.Dataset {
	colors := schema.GenerateColors(len(schema.RankedRiskLevels), true)
	datasets := make([]schema.Dataset, 0, len(schema.RankedRiskLevels))
	for i, level := range schema.RankedRiskLevels {
		data := make([]float64, 0, len(labels))
		for _, label := range labels {
			data = append(data, float64(cells[label][level]))
		}
		ds := schema.Dataset{
			Label:           string(level),
			Data:            data,
			BackgroundColor: schema.UniformColors(colors[i], len(data)),
		}
		if line {
			ds.BorderColor = schema.BorderColor(colors[i])
			ds.BorderWidth = 2
			ds.Fill = false
		}
		datasets = append(datasets, ds)
	}
	return datasets
}
