package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/resultstore"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	cfg, err := contract.BuildConfig(&contract.ConfigRawInput{Workers: 2})
	assert.NoError(t, err, "BuildConfig should not fail")
	return cfg
}

// testSnapshot builds a small repository: three Go files in a dependency
// cycle, one isolated Python file, and a test plus a config file that are
// both out of scoring scope.
func testSnapshot() *schema.Snapshot {
	return &schema.Snapshot{
		ID:   "snap-abc123",
		Repo: "example/repo",
		Files: []schema.FileNode{
			{Path: "core/a.go", Language: "go", LinesOfCode: 800, Cyclomatic: 20, Nesting: 5},
			{Path: "core/b.go", Language: "go", LinesOfCode: 300, Cyclomatic: 8, Nesting: 3},
			{Path: "core/c.go", Language: "go", LinesOfCode: 200, Cyclomatic: 4, Nesting: 2},
			{Path: "util/d.py", Language: "python", LinesOfCode: 100, Cyclomatic: 2, Nesting: 1},
			{Path: "core/a_test.go", Language: "go", LinesOfCode: 400, Cyclomatic: 6, Nesting: 2},
			{Path: "settings.yaml", Language: "yaml", LinesOfCode: 50},
		},
		Edges: []schema.RawEdge{
			{Source: "core/a.go", Target: "core/b.go"},
			{Source: "core/b.go", Target: "core/c.go"},
			{Source: "core/c.go", Target: "core/a.go"},
			{Source: "core/a.go", Target: "vendor/lib.go", External: true},
		},
	}
}

func expertProfile() *schema.SkillProfile {
	return &schema.SkillProfile{
		UserID: "alice",
		Skills: map[string]float64{"go": 1.0},
	}
}

func TestRunAnalysis(t *testing.T) {
	cfg := testConfig(t)
	result := RunAnalysis(context.Background(), cfg, testSnapshot(), expertProfile())

	assert.Equal(t, "snap-abc123", result.SnapshotID, "Snapshot ID should carry over")
	assert.Equal(t, "alice", result.UserID, "User ID should come from the profile")

	// Test and config files never receive scores
	assert.Len(t, result.Files, 4, "Only source files should be assessed")
	assert.Equal(t, 2, result.Diagnostics.ExcludedFiles, "Test and config files should be excluded")
	assert.Equal(t, 0, result.Diagnostics.InvalidSkills, "Profile is valid")
	assert.False(t, result.Diagnostics.Canceled, "Run should complete")

	// An expert in Go prefers the simplest Go file; an unknown language
	// file ends up last regardless of its structural simplicity.
	assert.Equal(t, "core/c.go", result.Files[0].Path, "Simplest Go file should rank first")
	assert.Equal(t, "util/d.py", result.Files[3].Path, "Unskilled language should rank last")

	byPath := make(map[string]schema.FileAssessment, len(result.Files))
	for _, f := range result.Files {
		byPath[f.Path] = f
	}

	for _, p := range []string{"core/a.go", "core/b.go", "core/c.go"} {
		assert.True(t, byPath[p].InCycle, "%s should be flagged as part of the cycle", p)
	}
	assert.False(t, byPath["util/d.py"].InCycle, "Isolated file is not in a cycle")
	assert.Equal(t, 0.0, byPath["util/d.py"].Centrality, "Isolated file has zero centrality")

	assert.Equal(t, schema.ExpertLevel, byPath["core/a.go"].SkillLevel, "Confidence 1.0 maps to expert")
	assert.Equal(t, schema.NoSkillLevel, byPath["util/d.py"].SkillLevel, "Missing language maps to none")
	assert.InDelta(t, byPath["core/a.go"].Complexity*0.6, byPath["core/a.go"].AdjustedComplexity, 1e-9,
		"Expert adjustment should scale complexity by 0.6")

	// All three Go files clear the path threshold for an expert
	assert.NotEmpty(t, result.Path.Steps, "Expert should receive a contribution path")
	for i, step := range result.Path.Steps {
		assert.Equal(t, i+1, step.Rank, "Steps should be rank-numbered from 1")
		assert.NotEqual(t, "util/d.py", step.Path, "Below-threshold file should not enter the path")
	}
}

func TestRunAnalysisBreakdown(t *testing.T) {
	cfg := testConfig(t)

	plain := RunAnalysis(context.Background(), cfg, testSnapshot(), expertProfile())
	for _, f := range plain.Files {
		assert.Nil(t, f.Breakdown, "Breakdown should be omitted without explain mode")
	}

	cfg.Explain = true
	explained := RunAnalysis(context.Background(), cfg, testSnapshot(), expertProfile())
	for _, f := range explained.Files {
		assert.NotNil(t, f.Breakdown, "Breakdown should be present in explain mode")
		assert.Contains(t, f.Breakdown, schema.BreakdownSkill, "Breakdown should carry the skill factor")
		assert.Contains(t, f.Breakdown, schema.BreakdownEase, "Breakdown should carry the ease factor")
		assert.Contains(t, f.Breakdown, schema.BreakdownSkillGap, "Breakdown should carry the risk factors")
	}
}

func TestRunAnalysisInvalidSkills(t *testing.T) {
	cfg := testConfig(t)
	profile := &schema.SkillProfile{
		UserID: "bob",
		Skills: map[string]float64{"go": 1.5, "python": -0.25, "java": 0.6, "rust": 0.75},
	}

	result := RunAnalysis(context.Background(), cfg, testSnapshot(), profile)
	assert.Equal(t, 3, result.Diagnostics.InvalidSkills, "Confidences outside the enumerated set should be dropped and counted")

	byPath := make(map[string]schema.FileAssessment, len(result.Files))
	for _, f := range result.Files {
		byPath[f.Path] = f
	}
	assert.Equal(t, schema.NoSkillLevel, byPath["core/a.go"].SkillLevel, "Dropped skill should read as no skill")
}

func TestRunAnalysisNilProfile(t *testing.T) {
	cfg := testConfig(t)
	result := RunAnalysis(context.Background(), cfg, testSnapshot(), nil)

	assert.Len(t, result.Files, 4, "Nil profile should still assess every source file")
	for _, f := range result.Files {
		assert.Equal(t, schema.NoSkillLevel, f.SkillLevel, "Nil profile means no recorded skills")
	}
}

func TestRunAnalysisDuplicatePaths(t *testing.T) {
	cfg := testConfig(t)
	snap := &schema.Snapshot{
		ID: "snap-dup",
		Files: []schema.FileNode{
			{Path: "core/a.go", Language: "go", LinesOfCode: 100, Cyclomatic: 2, Nesting: 1},
			{Path: "core/a.go", Language: "go", LinesOfCode: 5000, Cyclomatic: 30, Nesting: 10},
		},
	}

	result := RunAnalysis(context.Background(), cfg, snap, expertProfile())
	assert.Len(t, result.Files, 1, "Duplicate paths should collapse to one assessment")
	assert.Less(t, result.Files[0].Complexity, 20.0, "First record should win for duplicates")
}

func TestRunAnalysisCanceled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := RunAnalysis(ctx, cfg, testSnapshot(), expertProfile())
	assert.True(t, result.Diagnostics.Canceled, "Canceled context should be surfaced in diagnostics")
}

// writeSnapshotFile marshals a snapshot to a temp JSON file for the
// file-loading entry point.
func writeSnapshotFile(t *testing.T, snap *schema.Snapshot) string {
	t.Helper()
	data, err := json.Marshal(snap)
	assert.NoError(t, err)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunAnalysisCoreCacheMiss(t *testing.T) {
	cfg := testConfig(t)
	cfg.SnapshotPath = writeSnapshotFile(t, testSnapshot())
	cfg.UserID = "alice"

	cache := &resultstore.MockResultCache{}
	cache.On("Get", "snap-abc123", "alice").Return(nil, int64(0), nil)
	cache.On("Set", "snap-abc123", "alice", mock.Anything, mock.Anything).Return(nil)

	runStore := &resultstore.MockRunStore{}
	runStore.On("BeginRun", mock.Anything, "snap-abc123", "alice", mock.Anything).Return(int64(7), nil)
	runStore.On("RecordAssessment", int64(7), mock.Anything).Return(nil)
	runStore.On("EndRun", int64(7), mock.Anything, 4).Return(nil)

	mgr := &resultstore.MockStoreManager{}
	mgr.On("GetResultCache").Return(cache)
	mgr.On("GetRunStore").Return(runStore)

	result, err := runAnalysisCore(context.Background(), cfg, mgr)
	assert.NoError(t, err, "runAnalysisCore should not fail")
	assert.Len(t, result.Files, 4, "Fresh run should assess all source files")

	cache.AssertExpectations(t)
	runStore.AssertExpectations(t)
	runStore.AssertNumberOfCalls(t, "RecordAssessment", 4)
}

func TestRunAnalysisCoreCacheHit(t *testing.T) {
	cfg := testConfig(t)
	cfg.SnapshotPath = writeSnapshotFile(t, testSnapshot())
	cfg.UserID = "alice"

	cached := &schema.AnalysisResult{SnapshotID: "snap-abc123", UserID: "alice"}
	raw, err := json.Marshal(cached)
	assert.NoError(t, err)

	cache := &resultstore.MockResultCache{}
	cache.On("Get", "snap-abc123", "alice").Return(raw, int64(1234), nil)

	mgr := &resultstore.MockStoreManager{}
	mgr.On("GetResultCache").Return(cache)

	result, err := runAnalysisCore(context.Background(), cfg, mgr)
	assert.NoError(t, err, "runAnalysisCore should not fail on cache hit")
	assert.Equal(t, "snap-abc123", result.SnapshotID, "Cached result should be returned")
	assert.Empty(t, result.Files, "Cached result should be returned verbatim")

	cache.AssertExpectations(t)
}

func TestRunAnalysisCoreNoCacheFlag(t *testing.T) {
	cfg := testConfig(t)
	cfg.SnapshotPath = writeSnapshotFile(t, testSnapshot())
	cfg.UserID = "alice"
	cfg.NoCache = true

	cache := &resultstore.MockResultCache{}

	runStore := &resultstore.MockRunStore{}
	runStore.On("BeginRun", mock.Anything, "snap-abc123", "alice", mock.Anything).Return(int64(0), nil)

	mgr := &resultstore.MockStoreManager{}
	mgr.On("GetResultCache").Return(cache)
	mgr.On("GetRunStore").Return(runStore)

	result, err := runAnalysisCore(context.Background(), cfg, mgr)
	assert.NoError(t, err, "runAnalysisCore should not fail with --no-cache")
	assert.Len(t, result.Files, 4)

	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	assert.False(t, shouldSuppressHeader(ctx), "Header is not suppressed by default")
	assert.True(t, shouldSuppressHeader(withSuppressHeader(ctx)), "Suppression should round trip")

	_, ok := getRunID(ctx)
	assert.False(t, ok, "Run ID should be absent by default")

	id, ok := getRunID(withRunID(ctx, 42))
	assert.True(t, ok, "Run ID should round trip")
	assert.Equal(t, int64(42), id)
}
