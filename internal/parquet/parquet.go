// Package parquet provides data structures and functions for exporting
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the repointel_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// SnapshotID identifies the repository snapshot that was analyzed
	SnapshotID string `parquet:"snapshot_id,snappy"`

	// UserID identifies the skill profile the run was personalized for
	UserID string `parquet:"user_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalFilesAssessed is the number of files assessed in this run
	TotalFilesAssessed int32 `parquet:"total_files_assessed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileAssessmentRow represents the scores for a single file in a run.
// This struct maps to the repointel_assessments database table.
type FileAssessmentRow struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// FilePath is the canonical path of the file within the snapshot
	FilePath string `parquet:"file_path,snappy"`

	// Language is the file's language tag
	Language string `parquet:"language,snappy"`

	// Centrality is the rescaled PageRank score (0-100)
	Centrality float64 `parquet:"centrality,snappy"`

	// Complexity is the objective structural complexity (0-100)
	Complexity float64 `parquet:"complexity,snappy"`

	// AdjustedComplexity is the skill-adjusted complexity (0-100)
	AdjustedComplexity float64 `parquet:"adjusted_complexity,snappy"`

	// SkillLevel is the derived skill tier for the file's language
	SkillLevel string `parquet:"skill_level,snappy"`

	// Suitability is the personalized match score (0-1)
	Suitability float64 `parquet:"suitability,snappy"`

	// SuitabilityTier is the coarse suitability classification
	SuitabilityTier string `parquet:"suitability_tier,snappy"`

	// RiskScore is the blended modification risk (0-1)
	RiskScore float64 `parquet:"risk_score,snappy"`

	// RiskTier is the coarse risk classification
	RiskTier string `parquet:"risk_tier,snappy"`

	// HighImpact marks files whose centrality exceeds the impact threshold
	HighImpact bool `parquet:"high_impact,snappy"`

	// InCycle marks files inside a circular dependency group
	InCycle bool `parquet:"in_cycle,snappy"`

	// DependencyCount is the number of internal outgoing dependencies
	DependencyCount int32 `parquet:"dependency_count,snappy"`
}

// AssessmentToRow converts a joined assessment into its export row shape.
func AssessmentToRow(runID int64, a *schema.FileAssessment) FileAssessmentRow {
	return FileAssessmentRow{
		RunID:              runID,
		FilePath:           a.Path,
		Language:           a.Language,
		Centrality:         a.Centrality,
		Complexity:         a.Complexity,
		AdjustedComplexity: a.AdjustedComplexity,
		SkillLevel:         string(a.SkillLevel),
		Suitability:        a.Suitability,
		SuitabilityTier:    string(a.SuitabilityTier),
		RiskScore:          a.RiskScore,
		RiskTier:           string(a.RiskTier),
		HighImpact:         a.HighImpact,
		InCycle:            a.InCycle,
		DependencyCount:    int32(a.DependencyCount),
	}
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileAssessmentsParquet writes a slice of FileAssessmentRow structs to a Parquet file.
func WriteFileAssessmentsParquet(data []FileAssessmentRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the FileAssessmentRow struct tags
	writer := parquet.NewGenericWriter[FileAssessmentRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchAnalysisRuns returns sample analysis runs for demos and tests.
func MockFetchAnalysisRuns() []AnalysisRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"limit":100,"workers":8,"user":"alice"}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"limit":50,"workers":4,"user":"bob"}`

	startTime3 := now.Add(-10 * time.Minute)
	// The third run is still in flight, so its nullable fields stay nil.

	return []AnalysisRun{
		{
			RunID:              1,
			SnapshotID:         "a1b2c3d4",
			UserID:             "alice",
			StartTime:          startTime1,
			EndTime:            &endTime1,
			RunDurationMs:      &durationMs1,
			TotalFilesAssessed: 150,
			ConfigParams:       &configParams1,
		},
		{
			RunID:              2,
			SnapshotID:         "a1b2c3d4",
			UserID:             "bob",
			StartTime:          startTime2,
			EndTime:            &endTime2,
			RunDurationMs:      &durationMs2,
			TotalFilesAssessed: 75,
			ConfigParams:       &configParams2,
		},
		{
			RunID:      3,
			SnapshotID: "e5f6a7b8",
			UserID:     "alice",
			StartTime:  startTime3,
		},
	}
}

// MockFetchFileAssessments returns sample assessment rows for demos and tests.
func MockFetchFileAssessments() []FileAssessmentRow {
	return []FileAssessmentRow{
		{
			RunID:              1,
			FilePath:           "src/main.go",
			Language:           "go",
			Centrality:         85.3,
			Complexity:         71.8,
			AdjustedComplexity: 43.1,
			SkillLevel:         string(schema.ExpertLevel),
			Suitability:        0.82,
			SuitabilityTier:    string(schema.HighSuitability),
			RiskScore:          0.61,
			RiskTier:           string(schema.MediumRisk),
			HighImpact:         true,
			InCycle:            false,
			DependencyCount:    12,
		},
		{
			RunID:              1,
			FilePath:           "src/utils/helper.go",
			Language:           "go",
			Centrality:         22.4,
			Complexity:         18.9,
			AdjustedComplexity: 11.3,
			SkillLevel:         string(schema.ExpertLevel),
			Suitability:        0.91,
			SuitabilityTier:    string(schema.HighSuitability),
			RiskScore:          0.12,
			RiskTier:           string(schema.LowRisk),
			HighImpact:         false,
			InCycle:            false,
			DependencyCount:    2,
		},
		{
			RunID:              2,
			FilePath:           "scripts/migrate.py",
			Language:           "python",
			Centrality:         47.0,
			Complexity:         55.2,
			AdjustedComplexity: 66.2,
			SkillLevel:         string(schema.NoSkillLevel),
			Suitability:        0.31,
			SuitabilityTier:    string(schema.LowSuitability),
			RiskScore:          0.78,
			RiskTier:           string(schema.HighRisk),
			HighImpact:         false,
			InCycle:            true,
			DependencyCount:    5,
		},
	}
}

// ExportAssessments writes ranked assessments straight to a Parquet file,
// for the --output parquet mode. A run ID of 0 marks an ad hoc export that
// is not tied to a tracked run.
func ExportAssessments(outputPath string, files []schema.FileAssessment) error {
	if outputPath == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := make([]FileAssessmentRow, len(files))
	for i := range files {
		rows[i] = AssessmentToRow(0, &files[i])
	}
	if err := WriteFileAssessmentsParquet(rows, outputPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", outputPath)
	return nil
}
