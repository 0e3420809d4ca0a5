package core

import (
	"context"
	"sync"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// Tunable maxima to normalize the raw structural metrics. Values beyond
// these saturate so a few outliers cannot dominate the score.
const (
	maxCyclomatic = 30.0
	maxNesting    = 10.0

	sizePenaltyFloor = 500    // lines of code below this carry no penalty
	sizePenaltySpan  = 2000.0 // lines beyond the floor to reach the full penalty
)

// computeComplexity calculates a file's complexity score (0-100) from its
// cyclomatic count, nesting depth and size. The per-function metrics
// aggregate by max, so one highly complex function dominates the file.
// The optional breakdown map receives each factor's weighted contribution.
func computeComplexity(f *schema.FileNode, weights map[schema.BreakdownKey]float64, breakdown map[schema.BreakdownKey]float64) float64 {
	nCyclomatic := contract.Clamp01(float64(f.MaxCyclomatic()) / maxCyclomatic)
	nNesting := contract.Clamp01(float64(f.MaxNesting()) / maxNesting)
	nSize := sizePenalty(f.LinesOfCode)

	raw := weights[schema.BreakdownCyclomatic]*nCyclomatic +
		weights[schema.BreakdownNesting]*nNesting +
		weights[schema.BreakdownSizePenalty]*nSize

	if breakdown != nil {
		breakdown[schema.BreakdownCyclomatic] = weights[schema.BreakdownCyclomatic] * nCyclomatic * 100
		breakdown[schema.BreakdownNesting] = weights[schema.BreakdownNesting] * nNesting * 100
		breakdown[schema.BreakdownSizePenalty] = weights[schema.BreakdownSizePenalty] * nSize * 100
	}

	return contract.Clamp100(raw * 100)
}

// sizePenalty is 0 up to the floor, then grows linearly and caps at 1.
func sizePenalty(loc int) float64 {
	if loc <= sizePenaltyFloor {
		return 0
	}
	return contract.Clamp01(float64(loc-sizePenaltyFloor) / sizePenaltySpan)
}

// complexityOutput is the result of the parallel complexity phase.
type complexityOutput struct {
	Scores   map[string]float64 // path -> [0,100], excluded files absent
	Excluded int                // test/generated/config files that received no score
	Canceled bool               // the fan-out stopped early on cancellation
}

// analyzeComplexity scores all files using a worker pool of cfg.Workers
// goroutines. Each file's computation is independent; results are merged
// by path key. Cancellation is checked between dispatched batches and the
// scores computed so far are retained.
func analyzeComplexity(ctx context.Context, cfg *contract.Config, files []schema.FileNode) complexityOutput {
	out := complexityOutput{Scores: make(map[string]float64, len(files))}

	// First record wins for duplicate paths, mirroring the graph builder.
	seen := make(map[string]struct{}, len(files))
	scorable := make([]*schema.FileNode, 0, len(files))
	for i := range files {
		if _, dup := seen[files[i].Path]; dup {
			continue
		}
		seen[files[i].Path] = struct{}{}
		if schema.IsExcludedKind(contract.ClassifyFile(&files[i])) {
			out.Excluded++
			continue
		}
		scorable = append(scorable, &files[i])
	}

	type scored struct {
		path  string
		score float64
	}

	fileCh := make(chan *schema.FileNode, len(scorable))
	resultCh := make(chan scored, len(scorable))
	var wg sync.WaitGroup

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	for range workers {
		wg.Go(func() {
			for f := range fileCh {
				resultCh <- scored{path: f.Path, score: computeComplexity(f, cfg.ComplexityWeights, nil)}
			}
		})
	}

	for _, f := range scorable {
		if err := ctx.Err(); err != nil {
			out.Canceled = true
			break
		}
		fileCh <- f
	}
	close(fileCh)
	wg.Wait()
	close(resultCh)

	for r := range resultCh {
		out.Scores[r.path] = r.score
	}

	return out
}
