package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteChartResults outputs one chart summary, dispatching based on the output format configured.
func WriteChartResults(chart schema.ChartData, id schema.ChartID, title string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeChartJSONResults(chart, id, title, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeChartCSVResults(chart, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChartTable(chart, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeChartJSONResults handles opening the file and calling the JSON writer.
func writeChartJSONResults(chart schema.ChartData, id schema.ChartID, title string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForChart(w, chart, id, title)
	}, "Wrote JSON")
}

// writeChartCSVResults handles opening the file and calling the CSV writer.
func writeChartCSVResults(chart schema.ChartData, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, chartColumns(&chart), func(csvWriter *csv.Writer) error {
			return writeCSVResultsForChart(csvWriter, chart)
		})
	}, "Wrote CSV")
}

// chartColumns returns the column names for tabular chart output: a label
// column plus one value column per series.
func chartColumns(chart *schema.ChartData) []string {
	if len(chart.Datasets) == 0 {
		return []string{"label", "value"}
	}
	columns := make([]string, 0, len(chart.Datasets)+1)
	columns = append(columns, "label")
	for _, ds := range chart.Datasets {
		columns = append(columns, ds.Label)
	}
	return columns
}

// chartRow returns the stringified values for one label index.
func chartRow(chart *schema.ChartData, index int) []string {
	if len(chart.Datasets) == 0 {
		return []string{chart.Labels[index], formatValue(chart.ValueAt(index))}
	}
	row := make([]string, 0, len(chart.Datasets)+1)
	row = append(row, chart.Labels[index])
	for i := range chart.Datasets {
		value := 0.0
		if index < len(chart.Datasets[i].Data) {
			value = chart.Datasets[i].Data[index]
		}
		row = append(row, formatValue(value))
	}
	return row
}

// writeChartTable generates and writes the human-readable table.
func writeChartTable(chart schema.ChartData, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	columns := chartColumns(&chart)
	table.Header(columns)

	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabelWidth := getMaxTableLabelWidth(cfg, len(columns)-1)
	var data [][]string
	for i := range chart.Labels {
		row := chartRow(&chart, i)
		row[0] = contract.TruncateLabel(row[0], maxLabelWidth)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d labels across %d series\n", len(chart.Labels), len(columns)-1); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForChart writes the chart summary in CSV format.
func writeCSVResultsForChart(w *csv.Writer, chart schema.ChartData) error {
	for i := range chart.Labels {
		if err := w.Write(chartRow(&chart, i)); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForChart writes the chart summary in JSON format.
func writeJSONResultsForChart(w io.Writer, chart schema.ChartData, id schema.ChartID, title string) error {
	type JSONChartResult struct {
		ChartID schema.ChartID `json:"chartId"`
		Title   string         `json:"title"`
		schema.ChartData
	}

	return writeJSON(w, JSONChartResult{
		ChartID:   id,
		Title:     title,
		ChartData: chart,
	})
}
