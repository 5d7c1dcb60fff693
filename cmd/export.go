package cmd

import (
	"fmt"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/internal/parquet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd writes the filtered records and ranking to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered records and rankings to Parquet.",
	Long: `Export the filtered records and the High Risk member ranking to
Parquet files for downstream analytics.

Search, disease, and risk selections scope the exported records, so a
filtered export matches what the charts and rankings would show.

Examples:
  # Export everything from a JSON export
  riskboard export --data-file records.json

  # Export only Diabetes records to custom paths
  riskboard export --disease "Diabetes Mellitus Type 2" --records-file diabetes.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records := session.FilteredRecords()
		recordsFile := viper.GetString("records-file")
		if err := parquet.WriteRecordsParquet(records, recordsFile); err != nil {
			contract.LogFatal("Cannot export records", err)
		}
		fmt.Printf("Wrote %d records to %s\n", len(records), recordsFile)

		members := session.Rank(core.RankOptions{
			Filter: cfg.RankFilter,
			Sort:   cfg.RankSort,
			Limit:  cfg.ResultLimit,
		})
		rankFile := viper.GetString("rank-file")
		if err := parquet.WriteRankedMembersParquet(members, rankFile); err != nil {
			contract.LogFatal("Cannot export rankings", err)
		}
		fmt.Printf("Wrote %d ranked members to %s\n", len(members), rankFile)
	},
}
