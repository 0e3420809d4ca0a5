package resultstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRunDB_NoneBackend(t *testing.T) {
	err := MigrateRunDB(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateRunDB_SQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_migration.db")

	// Migrate to latest version
	err := MigrateRunDB(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Repeating should be a no-op
	err = MigrateRunDB(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Pin to version 1
	err = MigrateRunDB(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Roll back everything
	err = MigrateRunDB(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Apply version 1 again
	err = MigrateRunDB(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)
}

func TestMigrateRunDB_SQLiteInMemory(t *testing.T) {
	err := MigrateRunDB(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}
