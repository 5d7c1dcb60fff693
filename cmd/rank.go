package cmd

import (
	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd ranks members with High Risk records by care priority.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the top members ranked by care priority.",
	Long: `Rank members holding at least one High Risk record by care priority.

Each eligible member is scored from the distinct risk levels they hold
and the number of distinct diseases, with a bonus for members managing
three or more conditions. Helps care teams:
- Prioritize outreach to the members most at risk
- Focus on members juggling many conditions at once
- Audit how risk concentrates across the scheme

Examples:
  # Top 50 members by priority score
  riskboard rank --data-file records.json

  # Members with three or more diseases, most diseases first
  riskboard rank --rank-filter multiple_diseases --sort diseases_desc

  # Export the ranking to CSV
  riskboard rank --output csv --output-file rank.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRankReport(rootCtx, cfg, session); err != nil {
			contract.LogFatal("Cannot run rank report", err)
		}
	},
}
