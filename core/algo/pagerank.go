// Package algo holds the ranking algorithms: centrality iteration and
// contribution path planning.
package algo

import (
	"context"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core/graph"
)

// PageRank iteration constants.
const (
	// DampingFactor is the probability of following a dependency edge.
	// Standard value from the original PageRank paper.
	DampingFactor = 0.85

	// MaxIterations caps the fixed-point iteration. Hitting the cap is not
	// an error, only reduced confidence.
	MaxIterations = 100

	// ConvergenceEpsilon is the max absolute per-node change below which
	// the iteration is considered converged.
	ConvergenceEpsilon = 0.001
)

// CentralityResult carries the rescaled scores plus convergence metadata.
type CentralityResult struct {
	Scores     map[string]float64 // path -> [0,100]
	Iterations int
	Converged  bool
	MaxDelta   float64 // final maximum per-node change, for diagnostics
	Canceled   bool    // iteration stopped early on context cancellation
}

// Centrality runs the PageRank fixed-point iteration over the internal
// nodes of the graph:
//
//	PR(n) = (1-d) + d * Σ_{m→n} PR(m) / outDeg(m)
//
// Self-loops never feed their own node and external-only out-edges are
// excluded from the denominator. Cancellation is checked between rounds;
// the last completed round is returned rather than discarded. After the
// iteration, raw scores are linearly rescaled so the maximum maps to 100,
// and nodes with no internal edges are pinned to exactly 0.
func Centrality(ctx context.Context, g *graph.Graph) CentralityResult {
	n := g.InternalCount()
	result := CentralityResult{Scores: make(map[string]float64, n)}
	if n == 0 {
		result.Converged = true
		return result
	}

	outDeg := make([]int, n)
	for i := range n {
		outDeg[i] = g.PropagationOutDegree(i)
	}

	current := make([]float64, n)
	next := make([]float64, n)
	for i := range current {
		current[i] = 1.0 / float64(n)
	}

	for round := 1; round <= MaxIterations; round++ {
		if err := ctx.Err(); err != nil {
			result.Canceled = true
			break
		}

		// Every node reads only the previous round's committed values, so
		// updates within a round are order-independent.
		maxDelta := 0.0
		for i := range n {
			sum := 0.0
			for _, m := range g.In(i) {
				if m == i {
					continue
				}
				if outDeg[m] > 0 {
					sum += current[m] / float64(outDeg[m])
				}
			}
			next[i] = (1 - DampingFactor) + DampingFactor*sum
			if delta := abs(next[i] - current[i]); delta > maxDelta {
				maxDelta = delta
			}
		}
		current, next = next, current
		result.Iterations = round
		result.MaxDelta = maxDelta

		if maxDelta < ConvergenceEpsilon {
			result.Converged = true
			break
		}
	}

	// Linear rescale: max observed raw score maps to 100, 0 maps to 0.
	// Isolated nodes are pinned to 0 regardless of their raw fixed point.
	maxRaw := 0.0
	for i := range n {
		if g.Isolated(i) {
			continue
		}
		if current[i] > maxRaw {
			maxRaw = current[i]
		}
	}
	for i := range n {
		path := g.Node(i).Path
		if g.Isolated(i) || maxRaw == 0 {
			result.Scores[path] = 0
			continue
		}
		result.Scores[path] = current[i] / maxRaw * 100
	}

	return result
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
