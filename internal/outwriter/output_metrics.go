package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// metricDefinition is the render model for one scoring formula.
type metricDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Formula     string `json:"formula"`
	Range       string `json:"range"`
}

// buildMetricDefinitions assembles the formula display from the active
// weights, so customized weights show up in the formulas.
func buildMetricDefinitions(cfg *contract.Config) []metricDefinition {
	return []metricDefinition{
		{
			Name:        "centrality",
			Description: "How load-bearing a file is within the dependency graph",
			Formula:     "PR(n) = 0.15 + 0.85 * sum(PR(m)/outdeg(m)), rescaled so max -> 100",
			Range:       "0-100",
		},
		{
			Name:        "complexity",
			Description: "Objective structural complexity of a source file",
			Formula: formatWeightFormula(cfg.ComplexityWeights,
				[]schema.BreakdownKey{schema.BreakdownCyclomatic, schema.BreakdownNesting, schema.BreakdownSizePenalty}) + ", scaled to 100",
			Range: "0-100",
		},
		{
			Name:        "suitability",
			Description: "How well a file matches the user's current skills",
			Formula:     "0.60*confidence + 0.40*(100-adjusted)/100",
			Range:       "0-1",
		},
		{
			Name:        "risk",
			Description: "Danger of modifying a file, independent of who edits it",
			Formula: formatWeightFormula(cfg.RiskWeights,
				[]schema.BreakdownKey{schema.BreakdownCentrality, schema.BreakdownComplexity, schema.BreakdownSkillGap}),
			Range: "0-1",
		},
		{
			Name:        "effort",
			Description: "Estimated effort for one contribution path step",
			Formula:     "0.35*complexity + 0.25*deps + 0.20*size + 0.20*skill gap, mapped to 1-10",
			Range:       "1-10",
		},
	}
}

// formatWeightFormula formats weights for display in formulas.
func formatWeightFormula(weights map[schema.BreakdownKey]float64, factorKeys []schema.BreakdownKey) string {
	var parts []string
	for _, key := range factorKeys {
		if weight, ok := weights[key]; ok && weight > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", weight, string(key)))
		}
	}
	return strings.Join(parts, " + ")
}

// PrintMetricsDefinitions displays the formal definitions of all scoring
// formulas. This is a static display that does not require a snapshot.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	defs := buildMetricDefinitions(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, defs, cfg)
		}, "Wrote text")
	}
}

// printMetricsText displays metrics in human-readable text format.
func printMetricsText(w io.Writer, defs []metricDefinition, cfg *contract.Config) error {
	title := "Scoring Formulas"
	if cfg.UseEmojis {
		title = "📐 Scoring Formulas"
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len("Scoring Formulas"))); err != nil {
		return err
	}
	for _, d := range defs {
		if _, err := fmt.Fprintf(w, "%s (%s)\n  %s\n  %s\n\n", strings.ToUpper(d.Name), d.Range, d.Description, d.Formula); err != nil {
			return err
		}
	}

	// Skill levels, lowest confidence first.
	type levelRow struct {
		confidence float64
		level      schema.SkillLevel
	}
	rows := []levelRow{
		{0.25, schema.BeginnerLevel},
		{0.5, schema.IntermediateLevel},
		{0.75, schema.AdvancedLevel},
		{1.0, schema.ExpertLevel},
	}
	if _, err := fmt.Fprintln(w, "Skill levels (confidence -> adjustment factor):"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  (none) -> %.2f\n", schema.AdjustmentFactor(schema.NoSkillLevel)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "  %.2f %s -> %.2f\n", r.confidence, r.level, schema.AdjustmentFactor(r.level)); err != nil {
			return err
		}
	}
	return nil
}
