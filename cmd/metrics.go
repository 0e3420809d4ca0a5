package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

// metricsCmd prints the scoring model without loading a snapshot.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Describe the metrics used to score files.",
	Long: `Describe the metrics used to score files: complexity factors and
weights, skill adjustment factors per familiarity level, and the tier
thresholds for suitability and risk.

No snapshot is needed; this documents the model itself.

Examples:
  # Print the scoring model reference
  repointel metrics`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
