package core

import (
	"testing"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// FuzzComputeComplexity fuzzes the complexity score with arbitrary metrics
// and checks the [0,100] range invariant.
func FuzzComputeComplexity(f *testing.F) {
	seeds := []struct {
		loc, cyclomatic, nesting int
	}{
		{50, 3, 1},
		{0, 0, 0},
		{2500, 30, 10},
		{-10, -5, -1},
		{1 << 30, 1 << 20, 1 << 10},
	}
	for _, seed := range seeds {
		f.Add(seed.loc, seed.cyclomatic, seed.nesting)
	}

	weights := schema.GetDefaultComplexityWeights()
	f.Fuzz(func(t *testing.T, loc, cyclomatic, nesting int) {
		file := &schema.FileNode{
			Path:        "fuzz.go",
			Language:    "go",
			LinesOfCode: loc,
			Functions: []schema.FunctionMetrics{
				{Name: "f", Cyclomatic: cyclomatic, Nesting: nesting},
			},
		}
		score := computeComplexity(file, weights, nil)
		if score < 0 || score > 100 {
			t.Fatalf("complexity score %f out of [0,100] for loc=%d cyclomatic=%d nesting=%d",
				score, loc, cyclomatic, nesting)
		}
	})
}

// FuzzComputeRisk fuzzes the risk blend and checks the [0,1] range invariant.
func FuzzComputeRisk(f *testing.F) {
	seeds := []struct {
		centrality, complexity, confidence float64
	}{
		{0, 0, 0},
		{100, 100, 1},
		{50, 50, 0.5},
		{-20, 300, 2},
	}
	for _, seed := range seeds {
		f.Add(seed.centrality, seed.complexity, seed.confidence)
	}

	weights := schema.GetDefaultRiskWeights()
	f.Fuzz(func(t *testing.T, centrality, complexity, confidence float64) {
		score := computeRisk(centrality, complexity, confidence, weights, nil)
		if score < 0 || score > 1 {
			t.Fatalf("risk score %f out of [0,1] for centrality=%f complexity=%f confidence=%f",
				score, centrality, complexity, confidence)
		}
	})
}
