// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAssessments prints ranked file assessments using the configured output format.
func (ow *OutWriter) WriteAssessments(files []schema.FileAssessment, diag schema.RunDiagnostics, cfg *contract.Config, duration time.Duration) error {
	return PrintAssessments(files, diag, cfg, duration)
}

// WriteGraph prints the structural graph view using the configured output format.
func (ow *OutWriter) WriteGraph(summary schema.GraphSummary, central []schema.FileAssessment, diag schema.RunDiagnostics, cfg *contract.Config, duration time.Duration) error {
	return PrintGraphResults(summary, central, diag, cfg, duration)
}

// WritePath prints the contribution path using the configured output format.
func (ow *OutWriter) WritePath(path schema.ContributionPath, cfg *contract.Config, duration time.Duration) error {
	return PrintPathResults(path, cfg, duration)
}

// WriteRisk prints risk-ranked assessments using the configured output format.
func (ow *OutWriter) WriteRisk(files []schema.FileAssessment, cfg *contract.Config, duration time.Duration) error {
	return PrintRiskResults(files, cfg, duration)
}

// WriteMetrics prints the scoring formula definitions.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintMetricsDefinitions(cfg)
}

// getMaxTablePathWidth calculates the maximum width for file paths in table
// output based on terminal width and the enabled columns.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 30 // Rank + Suitability + Tier with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 50 // Centrality + Complexity + Adjusted + Level + Deps with formatting
	}

	// Add explain column
	if cfg.Explain {
		baseWidth += 35 // Explain column with formatting
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
