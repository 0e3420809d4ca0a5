//go:build integration

// Package integration contains integration tests for repointel.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/csv"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzeCSVVerification runs a full analysis on a fixture snapshot and
// verifies the exported CSV against what the snapshot dictates.
func TestAnalyzeCSVVerification(t *testing.T) {
	dir := t.TempDir()
	snapshotPath := writeFixtureSnapshot(t, dir)
	outPath := filepath.Join(dir, "out.csv")

	binaryPath := getRepointelBinary()
	cmd := exec.Command(binaryPath,
		"analyze", snapshotPath,
		"--output", "csv",
		"--output-file", outPath,
		"--cache-backend", "none",
		"--limit", "10",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.NoError(t, err, "stderr: %s", stderr.String())

	rows := readCSVRows(t, outPath)
	require.Len(t, rows, 4, "all fixture files should be assessed")

	byPath := make(map[string][]string, len(rows))
	for _, row := range rows {
		byPath[row[1]] = row
	}

	// Every file in the snapshot appears exactly once.
	for _, path := range []string{"core/engine.go", "core/store.go", "core/codec.go", "tools/report.py"} {
		assert.Contains(t, byPath, path)
	}

	// The cycle engine -> store -> codec -> engine is detected; the isolated
	// python script is not part of it.
	for _, path := range []string{"core/engine.go", "core/store.go", "core/codec.go"} {
		assert.Equal(t, "true", byPath[path][11], "in_cycle for %s", path)
	}
	assert.Equal(t, "false", byPath["tools/report.py"][11])

	// Rows are ordered by descending suitability.
	var prev float64 = 2.0
	for _, row := range rows {
		suitability, err := strconv.ParseFloat(row[3], 64)
		require.NoError(t, err)
		assert.LessOrEqual(t, suitability, prev, "ranking must be non-increasing")
		prev = suitability
	}
}

// TestGraphCycleVerification checks graph diagnostics against the fixture.
func TestGraphCycleVerification(t *testing.T) {
	dir := t.TempDir()
	snapshotPath := writeFixtureSnapshot(t, dir)

	binaryPath := getRepointelBinary()
	cmd := exec.Command(binaryPath, "graph", snapshotPath, "--cache-backend", "none")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "core/engine.go")
	assert.Contains(t, output, "Analysis completed in")
}

// readCSVRows loads the exported CSV, asserts on the header and returns data rows.
func readCSVRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	header := records[0]
	require.Equal(t, "rank", header[0])
	require.Equal(t, "file", header[1])
	require.Equal(t, "suitability", header[3])
	require.Equal(t, "in_cycle", header[11])

	return records[1:]
}
