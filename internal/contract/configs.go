package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/riskboard/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 1000
	DefaultServeAddr   = ":8321"
)

// DefaultFetchTimeout bounds remote record fetches.
const DefaultFetchTimeout = 30 * time.Second

// Config holds the runtime configuration for a command run.
// This struct remains the "final, validated" config.
type Config struct {
	DataFile  string
	RemoteURL string

	ResultLimit int
	RankFilter  schema.RankFilter
	RankSort    schema.RankSort

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	TextSearch    string
	DiseaseFilter string
	RiskFilter    schema.RiskRating

	// ChartFilterArgs are chartID=label pairs applied as chart filters
	// before any report runs
	ChartFilterArgs []ChartFilterArg

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	ServeAddr string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ChartFilterArg is one parsed chartID=label pair from --chart-filter.
type ChartFilterArg struct {
	ChartID schema.ChartID
	Label   string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DataFile       string `mapstructure:"data-file"`
	URL            string `mapstructure:"url"`
	Limit          int    `mapstructure:"limit"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Search         string `mapstructure:"search"`
	Disease        string `mapstructure:"disease"`
	Risk           string `mapstructure:"risk"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	ChartFilter []string `mapstructure:"chart-filter"`

	// --- Fields from rankCmd.Flags() ---
	RankFilter string `mapstructure:"rank-filter"`
	Sort       string `mapstructure:"sort"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateRankOptions(cfg, input); err != nil {
		return err
	}
	if err := validateDataSource(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := validateServeAddr(cfg, input); err != nil {
		return err
	}
	if err := validateChartFilterArgs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateChartFilterArgs parses the repeatable chartID=label pairs.
// Whether the chart actually supports filtering is decided where the
// filter is built; here only the pair syntax and known chart id are
// checked.
func validateChartFilterArgs(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartFilterArgs = cfg.ChartFilterArgs[:0]
	for _, raw := range input.ChartFilter {
		chartID, label, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(chartID) == "" || strings.TrimSpace(label) == "" {
			return fmt.Errorf("invalid --chart-filter value '%s'. expected chartID=label", raw)
		}
		id := schema.ChartID(strings.TrimSpace(chartID))
		if _, known := schema.ValidChartIDs[id]; !known {
			return fmt.Errorf("unknown chart identifier in --chart-filter: %s", chartID)
		}
		cfg.ChartFilterArgs = append(cfg.ChartFilterArgs, ChartFilterArg{
			ChartID: id,
			Label:   strings.TrimSpace(label),
		})
	}
	return nil
}

// validateSimpleInputs processes and validates all non-source related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.TextSearch = input.Search
	cfg.DiseaseFilter = input.Disease

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 3. Risk Dropdown Validation ---
	if input.Risk != "" {
		risk := schema.RiskRating(input.Risk)
		if _, ok := schema.ValidRiskRatings[risk]; !ok {
			return fmt.Errorf("invalid risk level '%s'. must be High Risk, Medium Risk, Low Risk, Unknown", input.Risk)
		}
		cfg.RiskFilter = risk
	}

	return nil
}

// validateRankOptions processes the ranking filter and sort order.
func validateRankOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.RankFilter = schema.RankFilter(strings.ToLower(input.RankFilter))
	if cfg.RankFilter == "" {
		cfg.RankFilter = schema.AllMembers
	}
	if _, ok := schema.ValidRankFilters[cfg.RankFilter]; !ok {
		return fmt.Errorf("invalid rank filter '%s'. must be all, multiple_diseases, single_disease", input.RankFilter)
	}

	cfg.RankSort = schema.RankSort(strings.ToLower(input.Sort))
	if cfg.RankSort == "" {
		cfg.RankSort = schema.RiskDesc
	}
	if _, ok := schema.ValidRankSorts[cfg.RankSort]; !ok {
		return fmt.Errorf("invalid sort order '%s'. must be risk_desc, risk_asc, diseases_desc, diseases_asc", input.Sort)
	}

	return nil
}

// validateDataSource ensures at most one explicit record source is given
// and that a remote URL parses.
func validateDataSource(cfg *Config, input *ConfigRawInput) error {
	cfg.DataFile = strings.TrimSpace(input.DataFile)
	cfg.RemoteURL = strings.TrimSpace(input.URL)

	if cfg.DataFile != "" && cfg.RemoteURL != "" {
		return fmt.Errorf("--data-file and --url are mutually exclusive")
	}
	if cfg.RemoteURL != "" {
		parsed, err := url.Parse(cfg.RemoteURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid --url value '%s'. expected an absolute http(s) URL", input.URL)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("unsupported URL scheme '%s'. must be http or https", parsed.Scheme)
		}
	}
	return nil
}

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateServeAddr validates the HTTP listen address.
func validateServeAddr(cfg *Config, input *ConfigRawInput) error {
	cfg.ServeAddr = strings.TrimSpace(input.Addr)
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}
	if !strings.Contains(cfg.ServeAddr, ":") {
		return fmt.Errorf("invalid --addr value '%s'. expected host:port or :port", input.Addr)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
