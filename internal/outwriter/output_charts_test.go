package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
	"github.com/stretchr/testify/assert"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextOut,
		Width:        80,
		StoreBackend: schema.SQLiteBackend,
	}
}

func singleSeriesChart() schema.ChartData {
	return schema.ChartData{
		Labels:          []string{"Asthma", "COPD"},
		Data:            []float64{12, 5},
		BackgroundColor: schema.GenerateColors(2, false),
	}
}

func multiSeriesChart() schema.ChartData {
	return schema.ChartData{
		Labels: []string{"Adherence", "Clinical"},
		Datasets: []schema.Dataset{
			{Label: "High Risk", Data: []float64{3, 1}},
			{Label: "Low Risk", Data: []float64{2, 4}},
		},
	}
}

func TestChartColumns(t *testing.T) {
	single := singleSeriesChart()
	assert.Equal(t, []string{"label", "value"}, chartColumns(&single))

	multi := multiSeriesChart()
	assert.Equal(t, []string{"label", "High Risk", "Low Risk"}, chartColumns(&multi))
}

func TestChartRow(t *testing.T) {
	single := singleSeriesChart()
	assert.Equal(t, []string{"Asthma", "12"}, chartRow(&single, 0))

	multi := multiSeriesChart()
	assert.Equal(t, []string{"Clinical", "1", "4"}, chartRow(&multi, 1))

	t.Run("short dataset zero-fills", func(t *testing.T) {
		ragged := multiSeriesChart()
		ragged.Datasets[1].Data = ragged.Datasets[1].Data[:1]
		assert.Equal(t, []string{"Clinical", "1", "0"}, chartRow(&ragged, 1))
	})
}

func TestWriteChartTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeChartTable(singleSeriesChart(), testConfig(), 5*time.Millisecond, &buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Asthma")
	assert.Contains(t, out, "COPD")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "Showing 2 labels across 1 series")
	assert.Contains(t, out, "Store backend: sqlite")
}

func TestWriteCSVResultsForChart(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	assert.NoError(t, writeCSVResultsForChart(w, multiSeriesChart()))
	w.Flush()

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	rows, err := reader.ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Adherence", "3", "2"},
		{"Clinical", "1", "4"},
	}, rows)
}

func TestWriteJSONResultsForChart(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForChart(&buf, singleSeriesChart(), schema.DiseaseChart, "Disease Distribution")
	assert.NoError(t, err)

	var decoded struct {
		ChartID string    `json:"chartId"`
		Title   string    `json:"title"`
		Labels  []string  `json:"labels"`
		Data    []float64 `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "diseaseChart", decoded.ChartID)
	assert.Equal(t, "Disease Distribution", decoded.Title)
	assert.Equal(t, []string{"Asthma", "COPD"}, decoded.Labels)
	assert.Equal(t, []float64{12, 5}, decoded.Data)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "12", formatValue(12))
	assert.Equal(t, "0", formatValue(0))
	assert.Equal(t, "2.67", formatValue(8.0/3.0))
	assert.Equal(t, "33.33", formatValue(100.0/3.0))
}

func TestGetMaxTableLabelWidth(t *testing.T) {
	t.Run("explicit width override", func(t *testing.T) {
		cfg := testConfig()
		cfg.Width = 100
		got := getMaxTableLabelWidth(cfg, 1)
		assert.Greater(t, got, 15)
		assert.LessOrEqual(t, got, 60)
	})

	t.Run("clamped to floor", func(t *testing.T) {
		cfg := testConfig()
		cfg.Width = 10
		assert.Equal(t, 15, getMaxTableLabelWidth(cfg, 1))
	})

	t.Run("more value columns shrink the label", func(t *testing.T) {
		cfg := testConfig()
		cfg.Width = 100
		wide := getMaxTableLabelWidth(cfg, 1)
		narrow := getMaxTableLabelWidth(cfg, 4)
		assert.GreaterOrEqual(t, wide, narrow)
	})
}
