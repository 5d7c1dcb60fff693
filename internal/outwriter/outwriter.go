// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteChart prints one chart summary using the configured output format.
func (ow *OutWriter) WriteChart(chart schema.ChartData, id schema.ChartID, title string, cfg *contract.Config, duration time.Duration) error {
	return WriteChartResults(chart, id, title, cfg, duration)
}

// WriteRank prints ranked member results using the configured output format.
func (ow *OutWriter) WriteRank(members []schema.RankedMember, cfg *contract.Config, duration time.Duration) error {
	return WriteRankResults(members, cfg, duration)
}

// WriteSummary prints dataset summary counts using the configured output format.
func (ow *OutWriter) WriteSummary(summary schema.DataSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(summary, cfg, duration)
}

// LogChartHeader prints the run header for a chart report to stdout.
func LogChartHeader(cfg *contract.Config, title string) {
	if cfg.UseEmojis {
		fmt.Printf("📊 %s\n", title)
		return
	}
	fmt.Printf("%s\n", title)
}

// LogRankHeader prints the run header for a ranking report to stdout.
func LogRankHeader(cfg *contract.Config) {
	title := fmt.Sprintf("High-Risk Members (filter: %s, sort: %s)", cfg.RankFilter, cfg.RankSort)
	if cfg.UseEmojis {
		fmt.Printf("🚨 %s\n", title)
		return
	}
	fmt.Printf("%s\n", title)
}

// LogSummaryHeader prints the run header for a summary report to stdout.
func LogSummaryHeader(cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Println("🩺 Dataset Summary")
		return
	}
	fmt.Println("Dataset Summary")
}
