package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/resultstore"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// resultsSetup loads the minimal configuration needed for run store
// operations. An empty backend means run tracking is disabled.
func resultsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("run-backend"), schema.NoneBackend)
	if err != nil {
		return err
	}
	connStr := viper.GetString("run-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Used by the export command.
	outputFile := viper.GetString("output-file")

	// No result cache for run store commands.
	if err := resultstore.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

func resultsSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsSetup()
}

// resultsMigrateSetup is a specialized setup that does NOT initialize
// stores or create tables, so migrations can run on a fresh database.
func resultsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("run-backend"), schema.NoneBackend)
	if err != nil {
		return err
	}
	connStr := viper.GetString("run-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite with an empty connection string, use the default path.
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = resultstore.GetRunDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr

	return nil
}

func resultsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsMigrateSetup()
}

// resultsCmd groups analysis run history management.
//
// Note: results subcommands use minimal initialization (resultsSetup)
// instead of the full sharedSetup, since they never load a snapshot.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage stored analysis runs and exports",
	Long: `Manage the history of analysis runs and per-file assessments.

When enabled via --run-backend, every analysis run is recorded with:
- Run metadata (timestamp, snapshot, user, configuration, duration)
- Per-file assessments (centrality, complexity, suitability, risk)

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored runs
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  repointel results status --run-backend sqlite

  # Export for analysis in pandas/DuckDB
  repointel results export --run-backend sqlite --output-file run-data`,
}

// resultsClearCmd clears all stored runs.
var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored analysis runs and assessments",
	Long: `Delete all stored analysis runs and per-file assessment history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  repointel results export --run-backend sqlite --output-file backup
  repointel results clear --run-backend sqlite`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ClearRunData(cfg.RunBackend, resultstore.GetRunDBFilePath(), cfg.RunDBConnect); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run data cleared successfully.")
	},
}

// resultsStatusCmd shows run store status.
var resultsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about stored analysis runs.

Displays:
- Backend type and connection status
- Total number of runs and assessments stored
- Newest and oldest run timestamps
- Database size

Examples:
  # Check run tracking status
  repointel results status --run-backend sqlite`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := resultstore.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		resultstore.PrintRunStatus(status)
	},
}

// resultsExportCmd exports run history to Parquet files.
var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored runs to Parquet for BI tools and analytics",
	Long: `Export all stored run data to Parquet format for use with analytics tools.

Exports two datasets:
- Analysis runs - metadata about each run
- File assessments - per-file scores and tiers

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  repointel results export --run-backend sqlite --output-file run-data

  # Query the export with DuckDB
  duckdb -c "SELECT * FROM read_parquet('run-data.assessments.parquet') LIMIT 10"`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ExecuteRunExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// resultsMigrateCmd runs schema migrations for the run store.
var resultsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  repointel results migrate --run-backend sqlite

  # Migrate to a specific version
  repointel results migrate --run-backend sqlite --target-version 1

  # Roll back everything
  repointel results migrate --run-backend sqlite --target-version 0`,
	PreRunE: resultsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.MigrateRunDB(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
