package cmd

import (
	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints dataset-wide counts.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dataset-wide record and member counts.",
	Long: `Summarize the loaded records: total records, unique members and
protocols, High Risk members, and the active/inactive split.

Unlike chart aggregations, the summary counts inactive records too, so
the active and inactive totals reconcile against the raw export.

Examples:
  # Summarize a JSON export
  riskboard summary --data-file records.json

  # Summarize whatever the store currently holds
  riskboard summary --store-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummaryReport(rootCtx, cfg, session); err != nil {
			contract.LogFatal("Cannot run summary report", err)
		}
	},
}
