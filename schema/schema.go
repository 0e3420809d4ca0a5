// Package schema has configs, models and global variables for all parts of repointel.
package schema

import "time"

// FunctionMetrics holds the raw structural measurements for a single function
// within a source file, as reported by the extraction collaborator.
type FunctionMetrics struct {
	Name       string `json:"name"`       // Function or method name
	Cyclomatic int    `json:"cyclomatic"` // Cyclomatic complexity count
	Nesting    int    `json:"nesting"`    // Maximum nesting depth within the function
}

// FileNode represents a single analyzed file and its raw structural metrics.
// Nodes are created once per analysis run and never mutated afterwards.
type FileNode struct {
	Path         string            `json:"path"`                // Canonical path, unique within a snapshot
	Language     string            `json:"language"`            // Language tag (e.g. "go", "python")
	Kind         FileKind          `json:"kind,omitempty"`      // Source, test, generated, config
	LinesOfCode  int               `json:"loc"`                 // Total lines of code
	Cyclomatic   int               `json:"cyclomatic"`          // File-level cyclomatic count (fallback when Functions is empty)
	Nesting      int               `json:"nesting"`             // File-level max nesting depth (fallback when Functions is empty)
	Functions    []FunctionMetrics `json:"functions,omitempty"` // Per-function metrics; aggregated by max
	LastModified time.Time         `json:"last_modified"`       // Last modification timestamp
	RecentCommit bool              `json:"recent_commit"`       // File was touched in the recent window
	OpenIssue    bool              `json:"open_issue"`          // File is referenced by an open issue
}

// MaxCyclomatic returns the highest cyclomatic count observed in the file.
// One highly complex function dominates the file, so this is a max, not an average.
func (f *FileNode) MaxCyclomatic() int {
	best := f.Cyclomatic
	for _, fn := range f.Functions {
		if fn.Cyclomatic > best {
			best = fn.Cyclomatic
		}
	}
	return best
}

// MaxNesting returns the deepest nesting observed in the file.
func (f *FileNode) MaxNesting() int {
	best := f.Nesting
	for _, fn := range f.Functions {
		if fn.Nesting > best {
			best = fn.Nesting
		}
	}
	return best
}

// RawEdge is one (source -> target) reference reported by the extraction
// collaborator. Paths are already resolved to canonical form upstream.
type RawEdge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	External bool   `json:"external"` // Target lives outside the analyzed snapshot
}

// Snapshot is the full input for one analysis run: the file records and the
// raw dependency edges extracted from a repository at a single point in time.
type Snapshot struct {
	ID    string     `json:"snapshot_id"` // Repository snapshot identifier (e.g. commit hash)
	Repo  string     `json:"repo"`        // Human-readable repository name
	Files []FileNode `json:"files"`
	Edges []RawEdge  `json:"edges"`
}

// SkillProfile maps language tags to a confidence value for one user.
// Valid confidence values are 0.25, 0.5, 0.75 and 1.0; an absent language
// means no recorded skill. Profiles are supplied by the external profiling
// collaborator, never computed here.
type SkillProfile struct {
	UserID string             `json:"user_id"`
	Skills map[string]float64 `json:"skills"`
}

// Confidence returns the recorded confidence for a language, or 0 when the
// user has no skill recorded for it.
func (p *SkillProfile) Confidence(language string) float64 {
	if p == nil {
		return 0
	}
	return p.Skills[language]
}
