package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/internal/recstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd groups record persistence operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the persisted record store.",
	Long: `Manage the record store that backs runs without --data-file or --url.

The store keeps one snapshot of records per backend. Saving replaces
the previous snapshot, so the store always reflects the latest export.

Examples:
  # Persist a JSON export into the default SQLite store
  riskboard store save --data-file records.json

  # Inspect what the store currently holds
  riskboard store status

  # Use a MySQL backend instead
  riskboard store status --store-backend mysql --store-db-connect "user:pass@tcp(localhost:3306)/riskboard"`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// storeSaveCmd persists the loaded records into the store.
var storeSaveCmd = &cobra.Command{
	Use:     "save",
	Short:   "Save the loaded records into the store.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records := session.Records()
		if err := recordStore.SaveRecords(rootCtx, records); err != nil {
			contract.LogFatal("Cannot save records", err)
		}
		fmt.Printf("Saved %d records to the %s store\n", len(records), cfg.StoreBackend)
	},
}

// storeLoadCmd verifies the store contents are readable.
var storeLoadCmd = &cobra.Command{
	Use:     "load",
	Short:   "Load records from the store and report the count.",
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := recordStore.LoadRecords(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot load records", err)
		}
		fmt.Printf("Loaded %d records from the %s store\n", len(records), cfg.StoreBackend)
	},
}

// storeStatusCmd prints store metadata.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show record count, last save time, and store size.",
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := recordStore.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot get store status", err)
		}
		fmt.Printf("Backend: %s\n", cfg.StoreBackend)
		fmt.Printf("Total records: %d\n", status.TotalRecords)
		if status.LastSavedTime.IsZero() {
			fmt.Println("Last saved: never")
		} else {
			fmt.Printf("Last saved: %s\n", status.LastSavedTime.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("Approximate size: %d bytes\n", status.TableSizeBytes)
	},
}

// storeClearCmd empties the store.
var storeClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all records from the store.",
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := recordStore.Clear(rootCtx); err != nil {
			contract.LogFatal("Cannot clear store", err)
		}
		fmt.Printf("Cleared the %s store\n", cfg.StoreBackend)
	},
}

// storeMigrateCmd applies schema migrations to the store database.
var storeMigrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Apply schema migrations to the store database.",
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := recstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
	},
}
