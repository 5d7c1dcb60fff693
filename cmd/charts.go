package cmd

import (
	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
	"github.com/spf13/cobra"
)

// chartsCmd computes chart-ready summaries over the filtered records.
var chartsCmd = &cobra.Command{
	Use:   "charts [chart-id]",
	Short: "Show chart-ready summaries of the loaded records.",
	Long: `Aggregate the loaded risk records into chart-ready summaries.

Without an argument, every chart in the catalog is computed. With a
chart identifier, only that chart is computed. Search, disease, risk,
and chart filters all scope the aggregation.

Well-known chart identifiers include:
- diseaseChart: distinct people per disease protocol
- riskChart: distinct people per risk level
- multipleDiseasesChart: people bucketed by disease count
- diseaseCooccurrenceChart: top disease pairs sharing people
- recordsOverTimeChart: records per calendar month
- highRiskAnalysisChart: calculation types among High Risk records

Examples:
  # Compute the full chart catalog from a JSON export
  riskboard charts --data-file records.json

  # One chart, scoped to a disease
  riskboard charts riskChart --data-file records.json --disease "Diabetes Mellitus Type 2"

  # Export a chart to CSV for tracking
  riskboard charts diseaseChart --output csv --output-file disease.csv

  # Cross-filter: compute the risk chart for one disease's records
  riskboard charts riskChart --data-file records.json --chart-filter diseaseChart=Asthma`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 1 {
			if err := core.ExecuteChartReport(rootCtx, cfg, session, schema.ChartID(args[0])); err != nil {
				contract.LogFatal("Cannot run chart report", err)
			}
			return
		}
		if err := core.ExecuteChartCatalog(rootCtx, cfg, session); err != nil {
			contract.LogFatal("Cannot run chart catalog", err)
		}
	},
}
