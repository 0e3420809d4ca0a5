//go:build basic || database || integration

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

var (
	// sharedBinaryPath holds the path to a shared repointel binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getRepointelBinary returns the path to the repointel binary, building it once if needed.
func getRepointelBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "repointel-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "repointel")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/repointel")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build repointel: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeFixtureSnapshot writes a small snapshot with a known cycle and returns its path.
func writeFixtureSnapshot(t *testing.T, dir string) string {
	t.Helper()

	now := time.Now()
	snap := schema.Snapshot{
		ID:   "integration-fixture",
		Repo: "example/fixture",
		Files: []schema.FileNode{
			{Path: "core/engine.go", Language: "go", LinesOfCode: 900, Cyclomatic: 24, Nesting: 6, LastModified: now},
			{Path: "core/store.go", Language: "go", LinesOfCode: 400, Cyclomatic: 10, Nesting: 3, LastModified: now},
			{Path: "core/codec.go", Language: "go", LinesOfCode: 250, Cyclomatic: 6, Nesting: 2, LastModified: now},
			{Path: "tools/report.py", Language: "python", LinesOfCode: 120, Cyclomatic: 4, Nesting: 2, LastModified: now},
		},
		Edges: []schema.RawEdge{
			{Source: "core/engine.go", Target: "core/store.go"},
			{Source: "core/store.go", Target: "core/codec.go"},
			{Source: "core/codec.go", Target: "core/engine.go"},
			{Source: "tools/report.py", Target: "core/codec.go"},
		},
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("failed to marshal fixture snapshot: %v", err)
	}

	path := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture snapshot: %v", err)
	}
	return path
}
