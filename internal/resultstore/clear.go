package resultstore

import (
	"fmt"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// ClearCacheData removes all memoized results for the specified backend.
// For SQLite, it deletes the database file. For MySQL/PostgreSQL, it drops
// the cache table. For NoneBackend, it does nothing.
func ClearCacheData(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		return removeDBFile(dbFilePath)

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTable(backend, connStr, resultCacheTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearRunData removes all run tracking data for the specified backend.
// For SQLite, it deletes the database file. For MySQL/PostgreSQL, it drops
// the run tables. For NoneBackend, it does nothing.
func ClearRunData(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		return removeDBFile(dbFilePath)

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		for _, table := range []string{assessmentsTable, runsTable} {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported run backend for clearing: %s", backend)
	}
}
