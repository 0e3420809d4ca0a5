package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

// LogAnalysisHeader prints a concise, 2-line header for each analysis run.
func LogAnalysisHeader(cfg *contract.Config) {
	snapName := filepath.Base(cfg.SnapshotPath)
	if snapName == "" || snapName == "." {
		snapName = "snapshot"
	}
	user := cfg.UserID
	if user == "" {
		user = "anonymous"
	}

	if cfg.UseEmojis {
		// Line 1: the inputs being analyzed
		fmt.Printf("🔎 Snapshot: %s (User: %s)\n", snapName, user)
		// Line 2: the run settings
		fmt.Printf("⚙️  Workers: %d, Cache: %s\n", cfg.Workers, cfg.CacheBackend)
	} else {
		fmt.Printf("Snapshot: %s (User: %s)\n", snapName, user)
		fmt.Printf("Workers: %d, Cache: %s\n", cfg.Workers, cfg.CacheBackend)
	}
}
