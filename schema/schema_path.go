package schema

// EffortBucket is the coarse hour-range estimate for one path step.
type EffortBucket string

// All effort buckets supported.
const (
	EffortShort  EffortBucket = "1-2h"
	EffortMedium EffortBucket = "3-6h"
	EffortLong   EffortBucket = ">6h"
)

// PathStep is one entry in a contribution path.
type PathStep struct {
	Rank               int          `json:"rank"` // 1-indexed position in the sequence
	Path               string       `json:"path"`
	Language           string       `json:"language"`
	AdjustedComplexity float64      `json:"adjusted_complexity"`
	EffortScore        int          `json:"effort_score"` // Cognitive load scaled to 1-10
	Effort             EffortBucket `json:"effort"`
	DependsOn          []string     `json:"depends_on,omitempty"` // In-path dependencies, all earlier in the sequence
	Milestone          bool         `json:"milestone"`            // A milestone marker follows this step
}

// ContributionPath is an ordered, dependency-respecting learning sequence.
// An empty path is a valid result and carries a reason code, not an error.
type ContributionPath struct {
	Steps     []PathStep `json:"steps"`
	TargetMet bool       `json:"target_met"` // False when fewer than MinPathLength steps were selected
	Reason    PathReason `json:"reason"`
}
