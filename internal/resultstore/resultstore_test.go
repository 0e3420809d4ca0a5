package resultstore

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

func sampleAssessment(path string) schema.FileAssessment {
	return schema.FileAssessment{
		Path:               path,
		Language:           "go",
		Centrality:         75.0,
		Complexity:         40.0,
		AdjustedComplexity: 30.0,
		SkillLevel:         schema.AdvancedLevel,
		Suitability:        0.72,
		SuitabilityTier:    schema.HighSuitability,
		RiskScore:          0.45,
		RiskTier:           schema.MediumRisk,
		HighImpact:         true,
		InCycle:            false,
		DependencyCount:    3,
		Scored:             true,
	}
}

func TestStoreSetup(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		tmpDir := t.TempDir()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(
			schema.SQLiteBackend, filepath.Join(tmpDir, "cache.db"),
			schema.SQLiteBackend, filepath.Join(tmpDir, "runs.db"),
		)
		assert.NoError(t, err, "Failed to initialize stores")

		assert.NotNil(t, Manager, "Manager should not be nil")
		assert.NotNil(t, Manager.GetResultCache(), "Result cache should not be nil")
		assert.NotNil(t, Manager.GetRunStore(), "Run store should not be nil")

		CloseStores()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		tmpDir := t.TempDir()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}

		cachePath := filepath.Join(tmpDir, "cache.db")
		runPath := filepath.Join(tmpDir, "runs.db")

		err1 := InitStores(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, runPath)
		err2 := InitStores(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, runPath)

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")

		CloseStores()
		CloseStores()
	})

	t.Run("none backends", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}

		err := InitStores(schema.NoneBackend, "", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to initialize with none backends")

		cache := Manager.GetResultCache()
		assert.NotNil(t, cache, "Result cache should not be nil for NoneBackend")

		// Set is a no-op and Get is always a miss
		err = cache.Set("snap", "user", []byte("value"), 1000)
		assert.NoError(t, err, "Set should not error on none backend")

		value, ts, err := cache.Get("snap", "user")
		assert.NoError(t, err, "Get should not error on none backend")
		assert.Nil(t, value, "Get should miss on none backend")
		assert.Equal(t, int64(0), ts, "Timestamp should be zero on miss")

		store := Manager.GetRunStore()
		runID, err := store.BeginRun(time.Now(), "snap", "user", nil)
		assert.NoError(t, err, "BeginRun should not error on none backend")
		assert.Equal(t, int64(0), runID, "BeginRun should return 0 on none backend")

		CloseStores()
	})
}

func TestResultCacheOperations(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		cache, err := NewResultCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
		assert.NoError(t, err, "Failed to create cache")
		defer func() { _ = cache.Close() }()

		err = cache.Set("snap-1", "alice", []byte(`{"files":[]}`), 1234567890)
		assert.NoError(t, err, "Set should not fail")

		value, ts, err := cache.Get("snap-1", "alice")
		assert.NoError(t, err, "Get should not fail")
		assert.Equal(t, `{"files":[]}`, string(value), "Value mismatch")
		assert.Equal(t, int64(1234567890), ts, "Timestamp mismatch")
	})

	t.Run("miss is not an error", func(t *testing.T) {
		cache, err := NewResultCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
		assert.NoError(t, err, "Failed to create cache")
		defer func() { _ = cache.Close() }()

		value, ts, err := cache.Get("snap-1", "nobody")
		assert.NoError(t, err, "Miss should not be an error")
		assert.Nil(t, value, "Miss should return nil value")
		assert.Equal(t, int64(0), ts, "Miss should return zero timestamp")
	})

	t.Run("upsert behavior", func(t *testing.T) {
		cache, err := NewResultCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
		assert.NoError(t, err, "Failed to create cache")
		defer func() { _ = cache.Close() }()

		err = cache.Set("snap-1", "alice", []byte("initial"), 1000)
		assert.NoError(t, err, "Initial Set should not fail")

		err = cache.Set("snap-1", "alice", []byte("updated"), 2000)
		assert.NoError(t, err, "Update Set should not fail")

		value, ts, err := cache.Get("snap-1", "alice")
		assert.NoError(t, err, "Get after update should not fail")
		assert.Equal(t, "updated", string(value), "After upsert, value mismatch")
		assert.Equal(t, int64(2000), ts, "After upsert, timestamp mismatch")
	})

	t.Run("distinct users on one snapshot", func(t *testing.T) {
		cache, err := NewResultCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
		assert.NoError(t, err, "Failed to create cache")
		defer func() { _ = cache.Close() }()

		assert.NoError(t, cache.Set("snap-1", "alice", []byte("for-alice"), 1000))
		assert.NoError(t, cache.Set("snap-1", "bob", []byte("for-bob"), 2000))

		value, _, err := cache.Get("snap-1", "alice")
		assert.NoError(t, err)
		assert.Equal(t, "for-alice", string(value), "Alice should get her own entry")

		value, _, err = cache.Get("snap-1", "bob")
		assert.NoError(t, err)
		assert.Equal(t, "for-bob", string(value), "Bob should get his own entry")
	})

	t.Run("clear", func(t *testing.T) {
		cache, err := NewResultCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
		assert.NoError(t, err, "Failed to create cache")
		defer func() { _ = cache.Close() }()

		assert.NoError(t, cache.Set("snap-1", "alice", []byte("value"), 1000))
		assert.NoError(t, cache.Clear(), "Clear should not fail")

		value, _, err := cache.Get("snap-1", "alice")
		assert.NoError(t, err, "Get after clear should not fail")
		assert.Nil(t, value, "Cache should be empty after clear")
	})

	t.Run("status", func(t *testing.T) {
		cache, err := NewResultCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
		assert.NoError(t, err, "Failed to create cache")
		defer func() { _ = cache.Close() }()

		assert.NoError(t, cache.Set("snap-1", "alice", []byte("v1"), 1000))
		assert.NoError(t, cache.Set("snap-2", "alice", []byte("v2"), 2000))

		status, err := cache.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")
		assert.Equal(t, schema.SQLiteBackend, status.Backend, "Backend should be sqlite")
		assert.Equal(t, 2, status.TotalKeys, "Total keys should be 2")
		assert.Equal(t, time.Unix(1000, 0).UTC(), status.OldestItem.UTC(), "Oldest item mismatch")
		assert.Equal(t, time.Unix(2000, 0).UTC(), status.NewestItem.UTC(), "Newest item mismatch")
		assert.Greater(t, status.SizeBytes, int64(0), "Size should be greater than 0")
	})
}

func TestRunStoreLifecycle(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "runs.db"))
	assert.NoError(t, err, "Failed to create run store")
	defer func() { _ = store.Close() }()

	startTime := time.Now()
	runID, err := store.BeginRun(startTime, "snap-1", "alice", map[string]any{"workers": 4})
	assert.NoError(t, err, "BeginRun should not fail")
	assert.Greater(t, runID, int64(0), "Run ID should be positive")

	assert.NoError(t, store.RecordAssessment(runID, sampleAssessment("core/graph.go")))
	assert.NoError(t, store.RecordAssessment(runID, sampleAssessment("core/algo.go")))

	err = store.EndRun(runID, startTime.Add(250*time.Millisecond), 2)
	assert.NoError(t, err, "EndRun should not fail")

	assessments, err := store.ListAssessments(0)
	assert.NoError(t, err, "ListAssessments should not fail")
	assert.Len(t, assessments, 2, "Should list both assessments")
	assert.Equal(t, "core/algo.go", assessments[0].Path, "Assessments should be path-ordered within a run")
	assert.Equal(t, schema.AdvancedLevel, assessments[0].SkillLevel, "Skill level should round trip")
	assert.Equal(t, schema.MediumRisk, assessments[0].RiskTier, "Risk tier should round trip")
	assert.True(t, assessments[0].HighImpact, "High impact flag should round trip")

	limited, err := store.ListAssessments(1)
	assert.NoError(t, err, "Limited ListAssessments should not fail")
	assert.Len(t, limited, 1, "Limit should cap the result set")

	status, err := store.GetStatus()
	assert.NoError(t, err, "GetStatus should not fail")
	assert.Equal(t, 1, status.TotalRuns, "Total runs should be 1")
	assert.Equal(t, 2, status.TotalFiles, "Total assessments should be 2")
	assert.False(t, status.OldestRun.IsZero(), "Oldest run should be set")

	runs, err := store.(*RunStoreImpl).GetAllRuns()
	assert.NoError(t, err, "GetAllRuns should not fail")
	assert.Len(t, runs, 1, "Should have one run record")
	assert.Equal(t, runID, runs[0].RunID, "Run ID should round trip")
	assert.Equal(t, "snap-1", runs[0].SnapshotID, "Snapshot ID should round trip")
	assert.NotNil(t, runs[0].EndTime, "End time should be set after EndRun")
	assert.NotNil(t, runs[0].RunDurationMs, "Duration should be set after EndRun")
	assert.Equal(t, int32(2), runs[0].TotalFilesAssessed, "Total files should round trip")

	rows, err := store.(*RunStoreImpl).GetAllAssessmentRows()
	assert.NoError(t, err, "GetAllAssessmentRows should not fail")
	assert.Len(t, rows, 2, "Should have two assessment rows")
	assert.Equal(t, runID, rows[0].RunID, "Row run ID should round trip")

	assert.NoError(t, store.Clear(), "Clear should not fail")
	status, err = store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns, "Total runs should be 0 after clear")
	assert.Equal(t, 0, status.TotalFiles, "Total assessments should be 0 after clear")
}

func TestRunStoreMultipleRuns(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "runs.db"))
	assert.NoError(t, err, "Failed to create run store")
	defer func() { _ = store.Close() }()

	first, err := store.BeginRun(time.Now(), "snap-1", "alice", nil)
	assert.NoError(t, err)
	second, err := store.BeginRun(time.Now(), "snap-2", "bob", nil)
	assert.NoError(t, err)
	assert.Greater(t, second, first, "Run IDs should be monotonic")

	assert.NoError(t, store.RecordAssessment(first, sampleAssessment("a.go")))
	assert.NoError(t, store.RecordAssessment(second, sampleAssessment("b.go")))

	// Newest run first
	assessments, err := store.ListAssessments(0)
	assert.NoError(t, err)
	assert.Len(t, assessments, 2)
	assert.Equal(t, "b.go", assessments[0].Path, "Latest run should come first")
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "repointel_runs", false},
		{"valid name with numbers", "table_123", false},
		{"valid name starting with underscore", "_table", false},
		{"empty name", "", true},
		{"starts with number", "123_table", true},
		{"contains dash", "test-table", true},
		{"contains space", "test table", true},
		{"sql injection attempt", "t'; DROP TABLE users; --", true},
		{"contains dot", "test.table", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
			}
		})
	}
}

func TestValidateTableNameAcceptsStoreTables(t *testing.T) {
	// The constructors validate these before splicing them into SQL; a rename
	// that breaks the pattern must fail here, not at runtime.
	for _, tableName := range []string{resultCacheTable, runsTable, assessmentsTable} {
		assert.NoError(t, validateTableName(tableName))
	}
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		want    string
	}{
		{"SQLite backend", schema.SQLiteBackend, `"test_table"`},
		{"MySQL backend", schema.MySQLBackend, "`test_table`"},
		{"PostgreSQL backend", schema.PostgreSQLBackend, `"test_table"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteTableName("test_table", tt.backend)
			assert.Equal(t, tt.want, got, "quoteTableName mismatch")
		})
	}
}

func TestPlaceholderFor(t *testing.T) {
	assert.Equal(t, "?", placeholderFor(schema.SQLiteBackend))
	assert.Equal(t, "?", placeholderFor(schema.MySQLBackend))
	assert.Equal(t, "$1", placeholderFor(schema.PostgreSQLBackend))
}

func TestCreateQueries(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		query        string
		wantContains []string
	}{
		{
			name:         "cache table SQLite",
			backend:      schema.SQLiteBackend,
			query:        getCreateCacheTableQuery(schema.SQLiteBackend),
			wantContains: []string{"CREATE TABLE IF NOT EXISTS", "snapshot_id", "user_id", "PRIMARY KEY (snapshot_id, user_id)"},
		},
		{
			name:         "cache table PostgreSQL",
			backend:      schema.PostgreSQLBackend,
			query:        getCreateCacheTableQuery(schema.PostgreSQLBackend),
			wantContains: []string{"BYTEA"},
		},
		{
			name:         "runs table MySQL",
			backend:      schema.MySQLBackend,
			query:        getCreateRunsQuery(schema.MySQLBackend),
			wantContains: []string{"AUTO_INCREMENT", "`repointel_runs`"},
		},
		{
			name:         "runs table PostgreSQL",
			backend:      schema.PostgreSQLBackend,
			query:        getCreateRunsQuery(schema.PostgreSQLBackend),
			wantContains: []string{"BIGSERIAL"},
		},
		{
			name:         "assessments table SQLite",
			backend:      schema.SQLiteBackend,
			query:        getCreateAssessmentsQuery(schema.SQLiteBackend),
			wantContains: []string{"PRIMARY KEY (run_id, file_path)", `"repointel_assessments"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.wantContains {
				assert.Contains(t, tt.query, want, "query should contain %q", want)
			}
		})
	}
}
