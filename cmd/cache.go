package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/resultstore"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// cacheSetup loads the minimal configuration needed for cache operations.
// Cache commands skip the full sharedSetup because they never touch a
// snapshot or a skill profile.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("cache-backend"), schema.SQLiteBackend)
	if err != nil {
		return err
	}
	connStr := viper.GetString("cache-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// No run tracking for cache commands.
	if err := resultstore.InitStores(backend, connStr, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd groups result cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis result cache.",
	Long: `Manage the cache that stores finished analysis results per snapshot and user.

A cache hit skips graph construction and scoring entirely, so repeated
queries against the same snapshot return immediately.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached results

Examples:
  # Check cache status
  repointel cache status

  # Clear cache after regenerating snapshots
  repointel cache clear`,
}

// cacheClearCmd clears the result cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis results",
	Long: `Delete all cached analysis results from the configured backend.

Use this when:
- Snapshots were regenerated with the same identifiers
- Scoring configuration changed in a way the cache key misses
- Testing performance without the cache

For SQLite: deletes the database file
For MySQL/PostgreSQL: clears the cache table

Examples:
  # Clear SQLite cache (default)
  repointel cache clear

  # Clear MySQL cache (set connection string via env variable)
  REPOINTEL_CACHE_BACKEND=mysql REPOINTEL_CACHE_DB_CONNECT="..." repointel cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ClearCacheData(cfg.CacheBackend, resultstore.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows result cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the analysis result cache.

Displays:
- Backend type and connection status
- Total number of cached results
- Newest and oldest cached result timestamps
- Cache database size

Examples:
  # Check cache status
  repointel cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := resultstore.Manager.GetResultCache().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		resultstore.PrintCacheStatus(status)
	},
}
