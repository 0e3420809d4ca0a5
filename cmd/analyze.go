package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

// analyzeCmd runs the full personalized analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <snapshot.json>",
	Short: "Rank files by personalized suitability for a contributor.",
	Long: `Run the full structural analysis over a repository snapshot and rank
files by how suitable they are for a specific contributor.

The pipeline builds the dependency graph, scores every source file for
centrality and structural complexity, then adjusts the ranking using the
contributor's per-language skill confidence. High suitability means a file
the contributor can work on productively.

Examples:
  # Rank files for the skills in profile.json
  repointel analyze snapshot.json --skills profile.json

  # Personalize for a specific user and show the factor breakdown
  repointel analyze snapshot.json --skills profile.json --user alice --explain

  # Export the ranking to CSV
  repointel analyze snapshot.json --output csv --output-file ranked.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
