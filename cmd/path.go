package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

// pathCmd plans a contribution path through the snapshot.
var pathCmd = &cobra.Command{
	Use:   "path <snapshot.json>",
	Short: "Plan an ordered contribution path through the most suitable files.",
	Long: `Plan a learning sequence through the repository for a contributor.

The planner selects files above the suitability threshold and orders them
easiest-first while respecting in-path dependencies: a file never appears
before a file it depends on. Effort estimates and milestone markers help
break the sequence into sessions.

An empty path is a valid outcome: it means no file cleared the threshold
for this contributor's skills.

Examples:
  # Plan a path for the skills in profile.json
  repointel path snapshot.json --skills profile.json

  # Export the plan for sharing
  repointel path snapshot.json --skills profile.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePath(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot plan contribution path", err)
		}
	},
}
