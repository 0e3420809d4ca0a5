package resultstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/parquet"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// Table names for run tracking.
const (
	runsTable        = "repointel_runs"
	assessmentsTable = "repointel_assessments"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{db: nil, backend: backend, connStr: connStr}, nil
	}

	// Validate table names to prevent SQL injection
	for _, tableName := range []string{runsTable, assessmentsTable} {
		if err := validateTableName(tableName); err != nil {
			return nil, err
		}
	}

	db, err := openBackendDB(backend, connStr, GetRunDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{assessmentsTable, getCreateAssessmentsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for repointel_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				snapshot_id VARCHAR(255) NOT NULL,
				user_id VARCHAR(255) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_files_assessed INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				snapshot_id TEXT NOT NULL,
				user_id TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_files_assessed INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				snapshot_id TEXT NOT NULL,
				user_id TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_files_assessed INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateAssessmentsQuery returns the CREATE TABLE query for repointel_assessments.
func getCreateAssessmentsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(assessmentsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				file_path VARCHAR(512) NOT NULL,
				language VARCHAR(50) NOT NULL,
				centrality DOUBLE NOT NULL,
				complexity DOUBLE NOT NULL,
				adjusted_complexity DOUBLE NOT NULL,
				skill_level VARCHAR(50) NOT NULL,
				suitability DOUBLE NOT NULL,
				suitability_tier VARCHAR(50) NOT NULL,
				risk_score DOUBLE NOT NULL,
				risk_tier VARCHAR(50) NOT NULL,
				high_impact BOOLEAN NOT NULL,
				in_cycle BOOLEAN NOT NULL,
				dependency_count INT NOT NULL,
				PRIMARY KEY (run_id, file_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				file_path TEXT NOT NULL,
				language TEXT NOT NULL,
				centrality DOUBLE PRECISION NOT NULL,
				complexity DOUBLE PRECISION NOT NULL,
				adjusted_complexity DOUBLE PRECISION NOT NULL,
				skill_level TEXT NOT NULL,
				suitability DOUBLE PRECISION NOT NULL,
				suitability_tier TEXT NOT NULL,
				risk_score DOUBLE PRECISION NOT NULL,
				risk_tier TEXT NOT NULL,
				high_impact BOOLEAN NOT NULL,
				in_cycle BOOLEAN NOT NULL,
				dependency_count INT NOT NULL,
				PRIMARY KEY (run_id, file_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				language TEXT NOT NULL,
				centrality REAL NOT NULL,
				complexity REAL NOT NULL,
				adjusted_complexity REAL NOT NULL,
				skill_level TEXT NOT NULL,
				suitability REAL NOT NULL,
				suitability_tier TEXT NOT NULL,
				risk_score REAL NOT NULL,
				risk_tier TEXT NOT NULL,
				high_impact INTEGER NOT NULL,
				in_cycle INTEGER NOT NULL,
				dependency_count INTEGER NOT NULL,
				PRIMARY KEY (run_id, file_path)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run record and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, snapshotID, userID string, configParams map[string]any) (int64, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (snapshot_id, user_id, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, snapshotID, userID, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (snapshot_id, user_id, start_time, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, snapshotID, userID, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run record with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalFiles int) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	startTime, err := rs.getRunStartTime(runID)
	if err != nil {
		return err
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	quotedTableName := quoteTableName(runsTable, rs.backend)
	var updateQuery string
	var args []any

	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_files_assessed = $3 WHERE run_id = $4`, quotedTableName)
		args = []any{endTime, durationMs, totalFiles, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files_assessed = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, rs.backend), durationMs, totalFiles, runID}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// getRunStartTime reads back the start_time of a run, handling the
// per-backend time storage formats.
func (rs *RunStoreImpl) getRunStartTime(runID int64) (time.Time, error) {
	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholderFor(rs.backend))
	row := rs.db.QueryRow(query, runID)

	switch rs.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse start_time: %w", err)
		}
		return startTime, nil
	default: // MySQL and PostgreSQL store as native datetime
		var startTime time.Time
		if err := row.Scan(&startTime); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		return startTime, nil
	}
}

// RecordAssessment stores one file's joined assessment for a run.
func (rs *RunStoreImpl) RecordAssessment(runID int64, a schema.FileAssessment) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(assessmentsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, file_path, language, centrality, complexity, adjusted_complexity,
			                 skill_level, suitability, suitability_tier, risk_score, risk_tier,
			                 high_impact, in_cycle, dependency_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, file_path, language, centrality, complexity, adjusted_complexity,
			                 skill_level, suitability, suitability_tier, risk_score, risk_tier,
			                 high_impact, in_cycle, dependency_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	args := []any{
		runID, a.Path, a.Language, a.Centrality, a.Complexity, a.AdjustedComplexity,
		string(a.SkillLevel), a.Suitability, string(a.SuitabilityTier), a.RiskScore, string(a.RiskTier),
		a.HighImpact, a.InCycle, a.DependencyCount,
	}

	if _, err := rs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return nil
}

// ListAssessments returns recorded assessments, newest run first.
func (rs *RunStoreImpl) ListAssessments(limit int) ([]schema.FileAssessment, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(assessmentsTable, rs.backend)
	query := fmt.Sprintf(`SELECT file_path, language, centrality, complexity, adjusted_complexity,
    skill_level, suitability, suitability_tier, risk_score, risk_tier,
    high_impact, in_cycle, dependency_count
    FROM %s ORDER BY run_id DESC, file_path`, quotedTableName)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileAssessment
	for rows.Next() {
		var a schema.FileAssessment
		var level, suitTier, riskTier string
		if err := rows.Scan(&a.Path, &a.Language, &a.Centrality, &a.Complexity, &a.AdjustedComplexity,
			&level, &a.Suitability, &suitTier, &a.RiskScore, &riskTier,
			&a.HighImpact, &a.InCycle, &a.DependencyCount); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		a.SkillLevel = schema.SkillLevel(level)
		a.SuitabilityTier = schema.SuitabilityTier(suitTier)
		a.RiskTier = schema.RiskTier(riskTier)
		a.Scored = true
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{Backend: rs.backend, Location: rs.location()}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		status.Description = "run tracking disabled"
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, rs.backend))
	if err := rs.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	filesQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(assessmentsTable, rs.backend))
	if err := rs.db.QueryRow(filesQuery).Scan(&status.TotalFiles); err != nil {
		return status, fmt.Errorf("failed to get total assessments: %w", err)
	}

	if status.TotalRuns > 0 {
		oldest, err := rs.runTimeAt("ASC")
		if err != nil {
			return status, err
		}
		newest, err := rs.runTimeAt("DESC")
		if err != nil {
			return status, err
		}
		status.OldestRun = oldest
		status.NewestRun = newest
	}

	if rs.backend == schema.SQLiteBackend {
		status.SizeBytes = fileSizeOrZero(rs.location())
	} else {
		status.SizeBytes = int64(status.TotalFiles) * 1000 // Rough estimate
	}
	status.Description = fmt.Sprintf("%d runs, %d assessments", status.TotalRuns, status.TotalFiles)

	return status, nil
}

// runTimeAt returns the start_time of the first run under the given order.
func (rs *RunStoreImpl) runTimeAt(order string) (time.Time, error) {
	query := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id %s LIMIT 1",
		quoteTableName(runsTable, rs.backend), order)
	row := rs.db.QueryRow(query)

	switch rs.backend {
	case schema.SQLiteBackend:
		var timeStr string
		if err := row.Scan(&timeStr); err != nil {
			return time.Time{}, fmt.Errorf("failed to get run time: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, timeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse run time: %w", err)
		}
		return t, nil
	default:
		var t time.Time
		if err := row.Scan(&t); err != nil {
			return time.Time{}, fmt.Errorf("failed to get run time: %w", err)
		}
		return t, nil
	}
}

// Clear removes all run tracking data.
func (rs *RunStoreImpl) Clear() error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	for _, table := range []string{assessmentsTable, runsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, rs.backend))
		if _, err := rs.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// location describes where the store lives, for status output.
func (rs *RunStoreImpl) location() string {
	if rs.backend == schema.SQLiteBackend {
		if rs.connStr != "" {
			return rs.connStr
		}
		return GetRunDBFilePath()
	}
	return rs.connStr
}

// GetAllRuns retrieves all run records for export tooling.
func (rs *RunStoreImpl) GetAllRuns() ([]parquet.AnalysisRun, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, snapshot_id, user_id, start_time, end_time, run_duration_ms, total_files_assessed, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []parquet.AnalysisRun
	for rows.Next() {
		var record parquet.AnalysisRun
		var totalFiles sql.NullInt32

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.SnapshotID, &record.UserID, &startTimeStr, &endTimeStr,
				&record.RunDurationMs, &totalFiles, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.SnapshotID, &record.UserID, &record.StartTime, &record.EndTime,
				&record.RunDurationMs, &totalFiles, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}
		if totalFiles.Valid {
			record.TotalFilesAssessed = totalFiles.Int32
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllAssessmentRows retrieves all assessment rows for export tooling.
func (rs *RunStoreImpl) GetAllAssessmentRows() ([]parquet.FileAssessmentRow, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(assessmentsTable, rs.backend)
	query := fmt.Sprintf(`SELECT run_id, file_path, language, centrality, complexity, adjusted_complexity,
    skill_level, suitability, suitability_tier, risk_score, risk_tier,
    high_impact, in_cycle, dependency_count
    FROM %s ORDER BY run_id, file_path`, quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []parquet.FileAssessmentRow
	for rows.Next() {
		var record parquet.FileAssessmentRow
		if err := rows.Scan(&record.RunID, &record.FilePath, &record.Language, &record.Centrality,
			&record.Complexity, &record.AdjustedComplexity, &record.SkillLevel, &record.Suitability,
			&record.SuitabilityTier, &record.RiskScore, &record.RiskTier,
			&record.HighImpact, &record.InCycle, &record.DependencyCount); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment rows: %w", err)
	}
	return results, nil
}
