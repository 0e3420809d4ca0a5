package resultstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// resultCacheTable is the name of the table for memoized analysis results.
const resultCacheTable = "repointel_result_cache"

// ResultCacheImpl handles durable result memoization using various database backends.
type ResultCacheImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.ResultCache = &ResultCacheImpl{} // Compile-time check

// NewResultCache initializes and returns a new ResultCache based on the backend type.
func NewResultCache(backend schema.DatabaseBackend, connStr string) (contract.ResultCache, error) {
	if backend == schema.NoneBackend {
		// Return a no-op cache for disabled memoization
		return &ResultCacheImpl{db: nil, backend: backend, connStr: connStr}, nil
	}

	// Validate table name to prevent SQL injection
	if err := validateTableName(resultCacheTable); err != nil {
		return nil, err
	}

	db, err := openBackendDB(backend, connStr, GetCacheDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreateCacheTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", resultCacheTable, err)
	}

	return &ResultCacheImpl{db: db, backend: backend, connStr: connStr}, nil
}

// getCreateCacheTableQuery returns the CREATE TABLE query for the given backend.
func getCreateCacheTableQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(resultCacheTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id VARCHAR(255) NOT NULL,
				user_id VARCHAR(255) NOT NULL,
				result_value MEDIUMBLOB NOT NULL,
				result_timestamp BIGINT NOT NULL,
				PRIMARY KEY (snapshot_id, user_id)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id TEXT NOT NULL,
				user_id TEXT NOT NULL,
				result_value BYTEA NOT NULL,
				result_timestamp BIGINT NOT NULL,
				PRIMARY KEY (snapshot_id, user_id)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id TEXT NOT NULL,
				user_id TEXT NOT NULL,
				result_value BLOB NOT NULL,
				result_timestamp INTEGER NOT NULL,
				PRIMARY KEY (snapshot_id, user_id)
			);
		`, quotedTableName)
	}
}

// Get retrieves a memoized result by (snapshot id, user id). A miss returns
// nil bytes and no error.
func (rc *ResultCacheImpl) Get(snapshotID, userID string) ([]byte, int64, error) {
	if rc.backend == schema.NoneBackend || rc.db == nil {
		return nil, 0, nil
	}

	var value []byte
	var ts int64

	quotedTableName := quoteTableName(resultCacheTable, rc.backend)
	var query string
	switch rc.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT result_value, result_timestamp FROM %s WHERE snapshot_id = $1 AND user_id = $2`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT result_value, result_timestamp FROM %s WHERE snapshot_id = ? AND user_id = ?`, quotedTableName)
	}

	row := rc.db.QueryRow(query, snapshotID, userID)
	if err := row.Scan(&value, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	return value, ts, nil
}

// Set inserts or replaces a memoized result.
func (rc *ResultCacheImpl) Set(snapshotID, userID string, value []byte, timestamp int64) error {
	if rc.backend == schema.NoneBackend || rc.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(resultCacheTable, rc.backend)
	var query string
	switch rc.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (snapshot_id, user_id, result_value, result_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE result_value = new.result_value, result_timestamp = new.result_timestamp`, quotedTableName)

	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (snapshot_id, user_id, result_value, result_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (snapshot_id, user_id) DO UPDATE SET result_value = EXCLUDED.result_value, result_timestamp = EXCLUDED.result_timestamp`, quotedTableName)

	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (snapshot_id, user_id, result_value, result_timestamp) VALUES (?, ?, ?, ?)`, quotedTableName)
	}

	_, err := rc.db.Exec(query, snapshotID, userID, value, timestamp)
	return err
}

// GetStatus returns status information about the result cache.
func (rc *ResultCacheImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: rc.backend, Location: rc.location()}

	if rc.backend == schema.NoneBackend || rc.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(resultCacheTable, rc.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := rc.db.QueryRow(countQuery).Scan(&status.TotalKeys); err != nil {
		return status, fmt.Errorf("failed to get total keys: %w", err)
	}
	if status.TotalKeys == 0 {
		return status, nil
	}

	var oldestTs, newestTs int64
	rangeQuery := fmt.Sprintf("SELECT MIN(result_timestamp), MAX(result_timestamp) FROM %s", quotedTableName)
	if err := rc.db.QueryRow(rangeQuery).Scan(&oldestTs, &newestTs); err != nil {
		return status, fmt.Errorf("failed to get entry time range: %w", err)
	}
	status.OldestItem = time.Unix(oldestTs, 0)
	status.NewestItem = time.Unix(newestTs, 0)

	if rc.backend == schema.SQLiteBackend {
		status.SizeBytes = fileSizeOrZero(rc.location())
	} else {
		// Rough estimate for server backends
		status.SizeBytes = int64(status.TotalKeys) * 1000
	}

	return status, nil
}

// Clear removes all memoized results.
func (rc *ResultCacheImpl) Clear() error {
	if rc.backend == schema.NoneBackend || rc.db == nil {
		return nil
	}
	quotedTableName := quoteTableName(resultCacheTable, rc.backend)
	_, err := rc.db.Exec(fmt.Sprintf("DELETE FROM %s", quotedTableName))
	return err
}

// Close closes the underlying DB connection.
func (rc *ResultCacheImpl) Close() error {
	if rc.db != nil {
		return rc.db.Close()
	}
	return nil
}

// location describes where the cache lives, for status output.
func (rc *ResultCacheImpl) location() string {
	if rc.backend == schema.SQLiteBackend {
		if rc.connStr != "" {
			return rc.connStr
		}
		return GetCacheDBFilePath()
	}
	return rc.connStr
}
