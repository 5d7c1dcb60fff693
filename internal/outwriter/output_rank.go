package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankResults outputs the ranked members, dispatching based on the output format configured.
func WriteRankResults(members []schema.RankedMember, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRankJSONResults(members, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRankCSVResults(members, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankTable(members, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRankJSONResults handles opening the file and calling the JSON writer.
func writeRankJSONResults(members []schema.RankedMember, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForRank(w, members)
	}, "Wrote JSON")
}

// writeRankCSVResults handles opening the file and calling the CSV writer.
func writeRankCSVResults(members []schema.RankedMember, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForRank(csvWriter, members)
	}, "Wrote CSV")
}

// writeRankTable generates and writes the human-readable table.
func writeRankTable(members []schema.RankedMember, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Member", "Diseases", "Count", "Highest Risk", "Score", "Label", "Latest"}
	table.Header(headers)

	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabelWidth := getMaxTableLabelWidth(cfg, len(headers)-2)
	var data [][]string
	for _, m := range members {
		row := []string{
			strconv.Itoa(m.Rank),
			m.Key(),
			contract.TruncateLabel(schema.FormatDiseases(m.Diseases), maxLabelWidth),
			strconv.Itoa(m.DiseaseCount),
			string(m.HighestRisk),
			formatValue(m.PriorityScore),
			contract.GetColorLabel(m.PriorityScore),
			formatLatestDate(m.LatestDate),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d high-risk members\n", len(members)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForRank writes the ranked members in CSV format.
func writeCSVResultsForRank(w *csv.Writer, members []schema.RankedMember) error {
	header := []string{
		"rank",
		"member",
		"diseases",
		"disease_count",
		"highest_risk",
		"priority_score",
		"label",
		"latest_date",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, m := range members {
		rec := []string{
			strconv.Itoa(m.Rank),
			m.Key(),
			strings.Join(m.Diseases, "|"),
			strconv.Itoa(m.DiseaseCount),
			string(m.HighestRisk),
			formatValue(m.PriorityScore),
			contract.GetPlainLabel(m.PriorityScore),
			formatLatestDate(m.LatestDate),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForRank writes the ranked members in JSON format.
func writeJSONResultsForRank(w io.Writer, members []schema.RankedMember) error {
	type JSONRankedMember struct {
		Label string `json:"label"`
		schema.RankedMember
	}

	output := make([]JSONRankedMember, len(members))
	for i, m := range members {
		output[i] = JSONRankedMember{
			Label:        contract.GetPlainLabel(m.PriorityScore),
			RankedMember: m,
		}
	}

	return writeJSON(w, output)
}

// formatLatestDate renders the most recent calculation date, empty when a
// member's records never carried one.
func formatLatestDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
