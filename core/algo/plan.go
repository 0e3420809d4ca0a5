package algo

import (
	"sort"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// Candidate is one file eligible for the contribution path: suitability
// above the threshold, with its dependency references already resolved.
type Candidate struct {
	Path               string
	Language           string
	AdjustedComplexity float64
	LinesOfCode        int
	SkillConfidence    float64
	Dependencies       []string // internal dependencies, self excluded
}

// PlanPath orders candidates into a dependency-respecting, increasing
// complexity learning sequence of 10-15 steps.
//
// A file becomes eligible once all of its dependencies that are themselves
// candidates appear earlier in the sequence; dependencies outside the
// candidate set cannot be sequenced and do not block. Among eligible files
// the lowest adjusted complexity wins, with the path string breaking ties
// so the result is deterministic. When cyclic candidate dependencies leave
// no file eligible, the lowest-complexity remaining file is forced in to
// keep the sequence moving.
func PlanPath(candidates []Candidate) schema.ContributionPath {
	if len(candidates) == 0 {
		return schema.ContributionPath{Reason: schema.PathNoCandidates}
	}

	remaining := make([]Candidate, len(candidates))
	copy(remaining, candidates)
	sort.Slice(remaining, func(i, j int) bool {
		if remaining[i].AdjustedComplexity != remaining[j].AdjustedComplexity {
			return remaining[i].AdjustedComplexity < remaining[j].AdjustedComplexity
		}
		return remaining[i].Path < remaining[j].Path
	})

	inSet := make(map[string]bool, len(remaining))
	for _, c := range remaining {
		inSet[c.Path] = true
	}
	placed := make(map[string]bool, len(remaining))

	var steps []schema.PathStep
	for len(steps) < schema.MaxPathLength && len(remaining) > 0 {
		pick := -1
		for i, c := range remaining {
			if eligible(c, inSet, placed) {
				pick = i
				break
			}
		}
		if pick == -1 {
			// Circular candidate dependencies: force the easiest file.
			pick = 0
		}

		c := remaining[pick]
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		placed[c.Path] = true

		var inPathDeps []string
		for _, dep := range c.Dependencies {
			if placed[dep] && dep != c.Path {
				inPathDeps = append(inPathDeps, dep)
			}
		}

		effortScore := EffortScore(c.AdjustedComplexity, len(c.Dependencies), c.LinesOfCode, c.SkillConfidence)
		steps = append(steps, schema.PathStep{
			Rank:               len(steps) + 1,
			Path:               c.Path,
			Language:           c.Language,
			AdjustedComplexity: c.AdjustedComplexity,
			EffortScore:        effortScore,
			Effort:             schema.EffortBucketFor(effortScore),
			DependsOn:          inPathDeps,
		})
	}

	markMilestones(steps)

	path := schema.ContributionPath{Steps: steps, TargetMet: len(steps) >= schema.MinPathLength}
	if path.TargetMet {
		path.Reason = schema.PathComplete
	} else {
		path.Reason = schema.PathShortfall
	}
	return path
}

// eligible reports whether every in-set dependency of c is already placed.
func eligible(c Candidate, inSet, placed map[string]bool) bool {
	for _, dep := range c.Dependencies {
		if dep == c.Path {
			continue
		}
		if inSet[dep] && !placed[dep] {
			return false
		}
	}
	return true
}

// markMilestones inserts a marker after every 4th step on longer paths and
// after every 3rd on shorter ones, keeping the cadence within 3-4 steps.
func markMilestones(steps []schema.PathStep) {
	if len(steps) == 0 {
		return
	}
	interval := 3
	if len(steps) >= 8 {
		interval = 4
	}
	for i := range steps {
		if (i+1)%interval == 0 && i != len(steps)-1 {
			steps[i].Milestone = true
		}
	}
}
