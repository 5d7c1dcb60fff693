package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/riskboard/schema"
)

// chartFilterSpec maps a chart to the record field its elements filter on
// and the display vocabulary used in filter descriptions.
type chartFilterSpec struct {
	field       schema.FilterField
	descPrefix  string
	displayName string
}

// chartFilterSpecs is the fixed mapping from chart identifier to filter
// behavior. Charts absent from this table (the multiple-disease family)
// cannot produce filters.
var chartFilterSpecs = map[schema.ChartID]chartFilterSpec{
	schema.DiseaseChart:             {schema.DiseaseField, "Disease", "Disease Distribution"},
	schema.DiseaseCooccurrenceChart: {schema.DiseaseField, "Disease", "Disease Co-occurrence"},
	schema.DiseaseSeverityChart:     {schema.DiseaseField, "Disease", "Disease Severity Patterns"},

	schema.RiskChart:             {schema.RiskField, "Risk Level", "Risk Rating Distribution"},
	schema.RiskBreakdownChart:    {schema.RiskField, "Risk Level", "Risk Rating Breakdown"},
	schema.HighRiskAnalysisChart: {schema.RiskField, "Risk Level", "High Risk Patient Analysis"},

	schema.CalculationTypeChart:    {schema.CalcTypeField, "Calculation Type", "Calculation Types per Risk Rating"},
	schema.CalcTypePerDiseaseChart: {schema.CalcTypeField, "Calculation Type", "Calculation Types per Disease"},
	schema.CommonCalcTypesChart:    {schema.CalcTypeField, "Calculation Type", "Most Common Calculation Types"},
	schema.RiskByCalcTypeChart:     {schema.CalcTypeField, "Calculation Type", "Risk by Calculation Type"},
	schema.CalcEffectivenessChart:  {schema.CalcTypeField, "Calculation Type", "Calculation Method Effectiveness"},

	schema.ProtocolUsageChart:    {schema.DiseaseField, "Protocol", "Protocol Usage Frequency"},
	schema.RiskPerProtocolChart:  {schema.DiseaseField, "Protocol", "Risk Rating per Protocol"},
	schema.HighRiskDiabetesChart: {schema.DiseaseField, "Protocol", "High Risk Diabetes - Adherence Risk Protocol"},

	schema.PeoplePerConditionChart: {schema.DiseaseField, "Condition", "People per Condition"},

	schema.RecordsOverTimeChart:   {schema.DateField, "Time Period", "Records Over Time"},
	schema.DataEntryPatternsChart: {schema.DateField, "Time Period", "Data Entry Patterns"},
	schema.RiskTrendChart:         {schema.DateField, "Time Period", "Risk Trend Analysis"},
}

// BuildChartFilter maps a resolved chart element to a semantic filter.
// It returns nil for charts outside the filterable set, and for time
// charts whose element label is not a year-month period.
func BuildChartFilter(chartID schema.ChartID, chartType string, element *schema.ChartElementData) *schema.ChartFilter {
	if element == nil {
		return nil
	}
	spec, ok := chartFilterSpecs[chartID]
	if !ok {
		return nil
	}
	if spec.field == schema.DateField && !strings.Contains(element.Label, "-") {
		return nil
	}
	return &schema.ChartFilter{
		ChartID:      chartID,
		ChartType:    chartType,
		ElementType:  element.ElementType,
		ElementLabel: element.Label,
		ElementValue: element.Value,
		FilterField:  spec.field,
		FilterValue:  element.Label,
		Description:  fmt.Sprintf("%s: %s", spec.descPrefix, element.Label),
	}
}

// ChartDisplayName returns the human-readable name for a filterable
// chart, or the raw identifier when none exists.
func ChartDisplayName(chartID schema.ChartID) string {
	if spec, ok := chartFilterSpecs[chartID]; ok {
		return spec.displayName
	}
	return string(chartID)
}

// FilterCriteria is the conjunction of free-text search, dropdown
// selections, and all active chart filters.
type FilterCriteria struct {
	// TextSearch is matched case-insensitively against every stringified
	// record field when non-empty
	TextSearch string

	// DiseaseFilter is an exact-match dropdown selection when non-empty
	DiseaseFilter string

	// RiskFilter is an exact-match dropdown selection when non-empty
	RiskFilter schema.RiskRating

	// ChartFilters are the simultaneously active chart-derived filters
	ChartFilters []schema.ChartFilter
}

// ApplyFilters evaluates the criteria conjunction against the complete
// record list, always starting fresh so filter removal is never
// order-dependent. The input list is not mutated.
func ApplyFilters(records []schema.Record, criteria FilterCriteria) []schema.Record {
	search := strings.ToLower(strings.TrimSpace(criteria.TextSearch))

	filtered := make([]schema.Record, 0, len(records))
	for i := range records {
		r := &records[i]
		if search != "" && !recordMatchesText(r, search) {
			continue
		}
		if criteria.DiseaseFilter != "" && r.DiseaseProtocol != criteria.DiseaseFilter {
			continue
		}
		if criteria.RiskFilter != "" && r.RiskRating != criteria.RiskFilter {
			continue
		}
		ok := true
		for j := range criteria.ChartFilters {
			if !recordMatchesField(r, criteria.ChartFilters[j].FilterField, criteria.ChartFilters[j].FilterValue) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		filtered = append(filtered, *r)
	}
	return filtered
}

// recordMatchesField evaluates one chart-filter predicate. Date filters
// match on the record's year-month bucket; dateless records never match.
func recordMatchesField(r *schema.Record, field schema.FilterField, value string) bool {
	switch field {
	case schema.DiseaseField:
		return r.DiseaseProtocol == value
	case schema.RiskField:
		return string(r.RiskRating) == value
	case schema.CalcTypeField:
		return r.CalculationType == value
	case schema.DateField:
		return r.HasDate() && schema.MonthKey(r.DateCalculated) == value
	default:
		return false
	}
}

func recordMatchesText(r *schema.Record, search string) bool {
	fields := []string{
		r.MemberID,
		r.DependentCode,
		r.DiseaseProtocol,
		string(r.RiskRating),
		r.CalculationType,
		r.StatusReason,
		r.StatusSource,
		strconv.FormatBool(r.IsActive),
	}
	if r.HasDate() {
		fields = append(fields, r.DateCalculated.Format("2006-01-02"))
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
