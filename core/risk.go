package core

import (
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// computeRisk blends how load-bearing a file is, how tangled it is, and
// how unfamiliar the user is with its language into a single [0,1] score.
// Risk uses the raw complexity, not the skill-adjusted one: the file is
// equally fragile no matter who edits it. The optional breakdown map
// records each normalized factor before weighting.
func computeRisk(centrality, complexity, confidence float64, weights map[schema.BreakdownKey]float64, breakdown map[schema.BreakdownKey]float64) float64 {
	nCentrality := centrality / 100
	nComplexity := complexity / 100
	nSkillGap := 1 - confidence

	if breakdown != nil {
		breakdown[schema.BreakdownCentrality] = nCentrality
		breakdown[schema.BreakdownComplexity] = nComplexity
		breakdown[schema.BreakdownSkillGap] = nSkillGap
	}

	return contract.Clamp01(weights[schema.BreakdownCentrality]*nCentrality +
		weights[schema.BreakdownComplexity]*nComplexity +
		weights[schema.BreakdownSkillGap]*nSkillGap)
}
