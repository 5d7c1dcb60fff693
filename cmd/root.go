package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/internal/ingest"
	"github.com/huangsam/riskboard/internal/recstore"
	"github.com/huangsam/riskboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// session holds the loaded records and filter state for this run.
var session = core.NewSession()

// recordStore is the persistence backend opened during setup.
var recordStore contract.RecordStore

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "riskboard",
	Short:              "Aggregate disease-risk records into chart-ready reports.",
	Long:               `Riskboard turns flat risk calculation records into ranked members, filters, and chart summaries.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".riskboard") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("RISKBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("rank-filter", schema.AllMembers)
	viper.SetDefault("sort", schema.RiskDesc)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("addr", contract.DefaultServeAddr)
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "yes")
}

// configSetup unmarshals config, runs validation, and opens the record store.
// It does not load records; store management commands use it directly.
func configSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Initialize persistence layer with validated config
	store, err := recstore.NewRecordStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}
	recordStore = store

	return nil
}

// sharedSetup runs configSetup, then loads records into the session and
// applies the configured search and dropdown selections.
func sharedSetup(ctx context.Context, cmd *cobra.Command, args []string) error {
	if err := configSetup(ctx, cmd, args); err != nil {
		return err
	}

	records, err := loadRecords(ctx)
	if err != nil {
		return err
	}
	session.ReplaceRecords(records)
	session.SetTextSearch(cfg.TextSearch)
	session.SetDiseaseFilter(cfg.DiseaseFilter)
	session.SetRiskFilter(cfg.RiskFilter)

	for _, arg := range cfg.ChartFilterArgs {
		element := &schema.ChartElementData{Label: arg.Label, ElementType: schema.GenericElement}
		filter := core.BuildChartFilter(arg.ChartID, "", element)
		if filter == nil {
			return fmt.Errorf("chart %s does not support filtering on label %q", arg.ChartID, arg.Label)
		}
		session.SetChartFilter(*filter)
	}

	return nil
}

// loadRecords picks the record source for this run: an explicit file or
// URL when given, the persistence backend otherwise.
func loadRecords(ctx context.Context) ([]schema.Record, error) {
	var source contract.RecordSource
	switch {
	case cfg.DataFile != "":
		source = ingest.NewFileSource(cfg.DataFile)
	case cfg.RemoteURL != "":
		source = ingest.NewRemoteSource(cfg.RemoteURL)
	default:
		return recordStore.LoadRecords(ctx)
	}
	return source.Load(ctx)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// configSetupWrapper wraps configSetup to provide context for Cobra's PreRunE.
func configSetupWrapper(cmd *cobra.Command, args []string) error {
	return configSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
