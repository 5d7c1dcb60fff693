package core

import (
	"testing"
	"time"

	"github.com/huangsam/riskboard/schema"
	"github.com/stretchr/testify/assert"
)

func element(label string, value float64, et schema.ElementType) *schema.ChartElementData {
	return &schema.ChartElementData{Label: label, Value: value, ElementType: et}
}

func TestBuildChartFilter(t *testing.T) {
	t.Run("disease chart", func(t *testing.T) {
		filter := BuildChartFilter(schema.DiseaseChart, "pie", element("Asthma", 12, schema.SliceElement))
		if assert.NotNil(t, filter) {
			assert.Equal(t, schema.DiseaseField, filter.FilterField)
			assert.Equal(t, "Asthma", filter.FilterValue)
			assert.Equal(t, "Disease: Asthma", filter.Description)
			assert.Equal(t, schema.DiseaseChart, filter.ChartID)
			assert.Equal(t, 12.0, filter.ElementValue)
		}
	})

	t.Run("risk chart", func(t *testing.T) {
		filter := BuildChartFilter(schema.RiskChart, "doughnut", element("High Risk", 5, schema.SliceElement))
		if assert.NotNil(t, filter) {
			assert.Equal(t, schema.RiskField, filter.FilterField)
			assert.Equal(t, "Risk Level: High Risk", filter.Description)
		}
	})

	t.Run("calc type chart", func(t *testing.T) {
		filter := BuildChartFilter(schema.CommonCalcTypesChart, "bar", element("Adherence", 7, schema.BarElement))
		if assert.NotNil(t, filter) {
			assert.Equal(t, schema.CalcTypeField, filter.FilterField)
		}
	})

	t.Run("time chart with month label", func(t *testing.T) {
		filter := BuildChartFilter(schema.RecordsOverTimeChart, "line", element("2024-03", 9, schema.PointElement))
		if assert.NotNil(t, filter) {
			assert.Equal(t, schema.DateField, filter.FilterField)
			assert.Equal(t, "2024-03", filter.FilterValue)
		}
	})

	t.Run("time chart rejects non-period labels", func(t *testing.T) {
		assert.Nil(t, BuildChartFilter(schema.RecordsOverTimeChart, "line", element("14:00", 9, schema.PointElement)))
	})

	t.Run("non-filterable chart", func(t *testing.T) {
		assert.Nil(t, BuildChartFilter(schema.MultipleDiseasesChart, "bar", element("2 Diseases", 4, schema.BarElement)))
	})

	t.Run("unknown chart", func(t *testing.T) {
		assert.Nil(t, BuildChartFilter(schema.ChartID("bogus"), "bar", element("x", 1, schema.BarElement)))
	})

	t.Run("nil element", func(t *testing.T) {
		assert.Nil(t, BuildChartFilter(schema.DiseaseChart, "pie", nil))
	})
}

func TestChartDisplayName(t *testing.T) {
	assert.Equal(t, "Disease Distribution", ChartDisplayName(schema.DiseaseChart))
	assert.Equal(t, "High Risk Diabetes - Adherence Risk Protocol", ChartDisplayName(schema.HighRiskDiabetesChart))
	assert.Equal(t, "multipleDiseasesChart", ChartDisplayName(schema.MultipleDiseasesChart))
}

func filterFixture() []schema.Record {
	march := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	return []schema.Record{
		recAt("M1", "00", "Asthma", schema.HighRisk, "Adherence", march),
		rec("M2", "00", "COPD", schema.LowRisk, "Clinical"),
		rec("M3", "00", "Asthma", schema.MediumRisk, "Clinical"),
	}
}

func TestApplyFiltersTextSearch(t *testing.T) {
	records := filterFixture()

	t.Run("case-insensitive substring", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{TextSearch: "copd"})
		assert.Len(t, out, 1)
		assert.Equal(t, "M2", out[0].MemberID)
	})

	t.Run("matches formatted date", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{TextSearch: "2024-03-05"})
		assert.Len(t, out, 1)
		assert.Equal(t, "M1", out[0].MemberID)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{TextSearch: "  asthma  "})
		assert.Len(t, out, 2)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{TextSearch: "zzz"})
		assert.Empty(t, out)
	})
}

func TestApplyFiltersDropdowns(t *testing.T) {
	records := filterFixture()

	t.Run("disease exact match", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{DiseaseFilter: "Asthma"})
		assert.Len(t, out, 2)
	})

	t.Run("risk exact match", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{RiskFilter: schema.HighRisk})
		assert.Len(t, out, 1)
	})

	t.Run("criteria AND together", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{DiseaseFilter: "Asthma", RiskFilter: schema.MediumRisk})
		assert.Len(t, out, 1)
		assert.Equal(t, "M3", out[0].MemberID)
	})
}

func TestApplyFiltersChartFilters(t *testing.T) {
	records := filterFixture()

	t.Run("single chart filter", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{ChartFilters: []schema.ChartFilter{
			{FilterField: schema.DiseaseField, FilterValue: "Asthma"},
		}})
		assert.Len(t, out, 2)
	})

	t.Run("date filter matches month bucket", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{ChartFilters: []schema.ChartFilter{
			{FilterField: schema.DateField, FilterValue: "2024-03"},
		}})
		assert.Len(t, out, 1)
		assert.Equal(t, "M1", out[0].MemberID)
	})

	t.Run("dateless records never match date filters", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{ChartFilters: []schema.ChartFilter{
			{FilterField: schema.DateField, FilterValue: "0001-01"},
		}})
		assert.Empty(t, out)
	})

	t.Run("multiple chart filters conjoin", func(t *testing.T) {
		out := ApplyFilters(records, FilterCriteria{ChartFilters: []schema.ChartFilter{
			{FilterField: schema.DiseaseField, FilterValue: "Asthma"},
			{FilterField: schema.RiskField, FilterValue: "High Risk"},
		}})
		assert.Len(t, out, 1)
		assert.Equal(t, "M1", out[0].MemberID)
	})
}

func TestApplyFiltersFreshPass(t *testing.T) {
	records := filterFixture()

	// Filtering is a pure function of (records, criteria): applying the
	// same criteria twice yields the same result, and the input survives.
	criteria := FilterCriteria{DiseaseFilter: "Asthma"}
	first := ApplyFilters(records, criteria)
	second := ApplyFilters(records, criteria)
	assert.Equal(t, first, second)
	assert.Len(t, records, 3)

	// Narrow then widen: removing a criterion restores the wider set.
	narrow := ApplyFilters(records, FilterCriteria{DiseaseFilter: "Asthma", RiskFilter: schema.HighRisk})
	assert.Len(t, narrow, 1)
	widened := ApplyFilters(records, FilterCriteria{DiseaseFilter: "Asthma"})
	assert.Len(t, widened, 2)
}

func TestApplyFiltersEmptyCriteria(t *testing.T) {
	records := filterFixture()
	out := ApplyFilters(records, FilterCriteria{})
	assert.Equal(t, records, out)
}
