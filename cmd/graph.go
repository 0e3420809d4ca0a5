package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

// graphCmd shows the structural view of the snapshot.
var graphCmd = &cobra.Command{
	Use:   "graph <snapshot.json>",
	Short: "Show the dependency graph summary and the most central files.",
	Long: `Build the dependency graph from a snapshot and show its structure:
node and edge counts, circular dependency groups, and the files ranked by
centrality.

Centrality is a PageRank-style score rescaled to 0-100; a file every other
file transitively depends on scores near 100. Files above the high-impact
threshold are flagged, since changes to them ripple widely.

Examples:
  # Show the graph summary and top central files
  repointel graph snapshot.json

  # Widen the centrality ranking
  repointel graph snapshot.json --limit 50`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGraph(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run graph analysis", err)
		}
	},
}
