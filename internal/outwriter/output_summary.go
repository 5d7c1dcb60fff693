package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// summaryRows flattens the summary into (metric, value) pairs in display order.
func summaryRows(summary schema.DataSummary) [][]string {
	return [][]string{
		{"Total Records", strconv.Itoa(summary.TotalRecords)},
		{"Unique Members", strconv.Itoa(summary.TotalMembers)},
		{"Disease Protocols", strconv.Itoa(summary.TotalProtocols)},
		{"High Risk Members", strconv.Itoa(summary.HighRiskCases)},
		{"Active Members", strconv.Itoa(summary.ActiveMembers)},
		{"Inactive Members", strconv.Itoa(summary.InactiveMembers)},
	}
}

// WriteSummaryResults outputs the dataset summary, dispatching based on the output format configured.
func WriteSummaryResults(summary schema.DataSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "value"}, func(csvWriter *csv.Writer) error {
				for _, row := range summaryRows(summary) {
					if err := csvWriter.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(summary, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(summary schema.DataSummary, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Value"})

	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := table.Bulk(summaryRows(summary)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}
