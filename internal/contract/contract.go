// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// StoreManager defines the interface for managing result stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetResultCache() ResultCache
	GetRunStore() RunStore
}

// ResultCache memoizes immutable analysis results keyed by
// (snapshot id, user id). The cache is owned by the caller; the analysis
// core itself holds no state between invocations.
type ResultCache interface {
	Get(snapshotID, userID string) ([]byte, int64, error)
	Set(snapshotID, userID string, value []byte, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Clear() error
	Close() error
}

// RunStore tracks analysis runs and the per-file assessments they produce.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(startTime time.Time, snapshotID, userID string, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data.
	EndRun(runID int64, endTime time.Time, totalFiles int) error

	// RecordAssessment stores one file's joined assessment for a run.
	RecordAssessment(runID int64, assessment schema.FileAssessment) error

	// ListAssessments returns all recorded assessments, newest run first,
	// for export tooling.
	ListAssessments(limit int) ([]schema.FileAssessment, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStatus, error)

	// Clear removes all run tracking data.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
