package schema

import "time"

// FileAssessment is the fully joined, per-file view produced by one analysis
// run for one user: centrality, complexity, personalization and risk.
type FileAssessment struct {
	Path     string `json:"path"`
	Language string `json:"language"`

	Centrality         float64 `json:"centrality"`          // [0,100]
	Complexity         float64 `json:"complexity"`          // [0,100]; meaningful only when Scored
	Scored             bool    `json:"scored"`              // False for excluded kinds (test/generated/config)
	AdjustedComplexity float64 `json:"adjusted_complexity"` // [0,100]
	SkillConfidence    float64 `json:"skill_confidence"`    // 0 when no matching skill
	SkillLevel         SkillLevel `json:"skill_level"`

	Suitability     float64         `json:"suitability"` // [0,1]
	SuitabilityTier SuitabilityTier `json:"suitability_tier"`

	RiskScore  float64  `json:"risk_score"` // [0,1]
	RiskTier   RiskTier `json:"risk_tier"`
	HighImpact bool     `json:"high_impact"` // Centrality > HighImpactThreshold; independent of RiskTier

	InCycle         bool `json:"in_cycle"`         // Member of a strongly connected component of size > 1
	ComponentID     int  `json:"component_id"`     // SCC id within the dependency graph
	DependencyCount int  `json:"dependency_count"` // Internal outgoing dependencies

	// Breakdown holds the normalized contribution of each factor for explain mode.
	Breakdown map[BreakdownKey]float64 `json:"breakdown,omitempty"`
}

// GraphDiagnostics counts the input defects observed while building the
// dependency graph. Defects are dropped and counted, never fatal.
type GraphDiagnostics struct {
	MalformedEdges int `json:"malformed_edges"` // Empty source or target path
	UnknownSources int `json:"unknown_sources"` // Source path not in the snapshot file set
	DuplicateEdges int `json:"duplicate_edges"` // Collapsed by set semantics
}

// RunDiagnostics aggregates everything a caller needs to judge the
// confidence of a run without treating any of it as an error.
type RunDiagnostics struct {
	Graph            GraphDiagnostics `json:"graph"`
	ExcludedFiles    int              `json:"excluded_files"`    // Test/generated/config files with no score
	InvalidSkills    int              `json:"invalid_skills"`    // Profile entries outside the enumerated confidence set
	NotConverged     bool             `json:"not_converged"`     // Centrality hit the iteration cap
	Canceled         bool             `json:"canceled"`          // Run was canceled; results are partial
	CentralityRounds int              `json:"centrality_rounds"` // Iterations actually performed
}

// GraphSummary is the serializable shape of the dependency graph for
// presentation collaborators.
type GraphSummary struct {
	InternalNodes      int        `json:"internal_nodes"`
	ExternalNodes      int        `json:"external_nodes"`
	InternalEdges      int        `json:"internal_edges"`
	ExternalEdges      int        `json:"external_edges"`
	CircularComponents [][]string `json:"circular_components"` // SCCs of size > 1, node paths sorted
}

// AnalysisResult is the immutable output of one analysis run, keyed by
// (snapshot id, user id). A fresh run always produces a fresh result set.
type AnalysisResult struct {
	SnapshotID string    `json:"snapshot_id"`
	UserID     string    `json:"user_id"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	Graph       GraphSummary       `json:"graph"`
	Centrality  map[string]float64 `json:"centrality"` // path -> [0,100]
	Complexity  map[string]float64 `json:"complexity"` // path -> [0,100]; excluded files absent
	Files       []FileAssessment   `json:"files"`      // Sorted by suitability descending
	Path        ContributionPath   `json:"path"`
	Diagnostics RunDiagnostics     `json:"diagnostics"`
}

// RunStatus describes the run tracking store for status commands.
type RunStatus struct {
	Backend     DatabaseBackend `json:"backend"`
	Location    string          `json:"location"`
	TotalRuns   int             `json:"total_runs"`
	TotalFiles  int             `json:"total_files"`
	OldestRun   time.Time       `json:"oldest_run"`
	NewestRun   time.Time       `json:"newest_run"`
	SizeBytes   int64           `json:"size_bytes"`
	Description string          `json:"description"`
}

// CacheStatus describes the memoized result cache for status commands.
type CacheStatus struct {
	Backend    DatabaseBackend `json:"backend"`
	Location   string          `json:"location"`
	TotalKeys  int             `json:"total_keys"`
	SizeBytes  int64           `json:"size_bytes"`
	OldestItem time.Time       `json:"oldest_item"`
	NewestItem time.Time       `json:"newest_item"`
}
