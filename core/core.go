// Package core has core logic for aggregation, filtering and ranking.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/internal/outwriter"
	"github.com/huangsam/riskboard/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, s *Session) error

// ExecuteChartReport computes one chart over the session's filtered view
// and prints it. It serves as the main entry point for 'charts <id>'.
func ExecuteChartReport(ctx context.Context, cfg *contract.Config, s *Session, id schema.ChartID) error {
	start := time.Now()
	chart, ok := s.Chart(id)
	if !ok {
		return fmt.Errorf("unknown chart identifier: %s", id)
	}
	duration := time.Since(start)
	if !shouldSuppressHeader(ctx) {
		outwriter.LogChartHeader(cfg, ChartDisplayName(id))
	}
	return outwriter.WriteChartResults(chart, id, ChartDisplayName(id), cfg, duration)
}

// ExecuteChartCatalog computes and prints every known chart in catalog
// order. It serves as the main entry point for 'charts' without an id.
func ExecuteChartCatalog(ctx context.Context, cfg *contract.Config, s *Session) error {
	for _, id := range schema.AllChartIDs {
		if err := ExecuteChartReport(ctx, cfg, s, id); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

// ExecuteRankReport ranks high-risk members over the session's filtered
// view and prints the result. It serves as the main entry point for 'rank'.
func ExecuteRankReport(ctx context.Context, cfg *contract.Config, s *Session) error {
	start := time.Now()
	members := s.Rank(RankOptions{
		Filter: cfg.RankFilter,
		Sort:   cfg.RankSort,
		Limit:  cfg.ResultLimit,
	})
	duration := time.Since(start)
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRankHeader(cfg)
	}
	return outwriter.WriteRankResults(members, cfg, duration)
}

// ExecuteSummaryReport summarizes the session's filtered view and prints
// the counts. It serves as the main entry point for 'summary'.
func ExecuteSummaryReport(ctx context.Context, cfg *contract.Config, s *Session) error {
	start := time.Now()
	summary := s.Summary()
	duration := time.Since(start)
	if !shouldSuppressHeader(ctx) {
		outwriter.LogSummaryHeader(cfg)
	}
	return outwriter.WriteSummaryResults(summary, cfg, duration)
}
