package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

// riskCmd ranks files by modification risk.
var riskCmd = &cobra.Command{
	Use:   "risk <snapshot.json>",
	Short: "Rank files by the risk of modifying them.",
	Long: `Rank files by modification risk: a blend of how central the file is,
how structurally complex it is, and how large the contributor's skill gap
for its language is.

High-risk files are the ones where a mistake propagates furthest and is
hardest to make safely. Use this before assigning work on unfamiliar parts
of a codebase.

Examples:
  # Rank by risk for the skills in profile.json
  repointel risk snapshot.json --skills profile.json

  # Show the factor breakdown for each file
  repointel risk snapshot.json --skills profile.json --explain`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRisk(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run risk assessment", err)
		}
	},
}
