// Package main provides a performance benchmarking tool for the repointel CLI.
// It generates synthetic snapshots of increasing sizes, measures execution
// times across command types, treating the first successful run as cold and
// averaging the rest as warm, and writes CSV output for performance analysis.
//
// Prerequisites:
// - repointel binary installed and available in PATH
// - Writable scratch directory for generated snapshots
//
// Usage: go run benchmark/main.go [scratch-dir]
//
//	scratch-dir: Directory to write generated snapshot files into
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Snapshot    string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ScratchDir  string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	// Snapshot sizes in file count, keyed by label.
	SnapshotSizes map[string]int
	SnapshotOrder []string
}

// snapshotFile mirrors the extraction collaborator's per-file record.
type snapshotFile struct {
	Path       string `json:"path"`
	Language   string `json:"language"`
	LOC        int    `json:"loc"`
	Cyclomatic int    `json:"cyclomatic"`
	Nesting    int    `json:"nesting"`
}

// snapshotEdge mirrors the extraction collaborator's edge record.
type snapshotEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type snapshot struct {
	ID    string         `json:"snapshot_id"`
	Repo  string         `json:"repo"`
	Files []snapshotFile `json:"files"`
	Edges []snapshotEdge `json:"edges"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [scratch-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		ScratchDir:  os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoCacheRuns: 3,
		CacheRuns:   4,
		SnapshotSizes: map[string]int{
			"small":  500,
			"medium": 5000,
			"large":  50000,
		},
		SnapshotOrder: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	snapshots, err := generateSnapshots(config)
	if err != nil {
		fmt.Printf("Snapshot generation failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache so cold runs are actually cold
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("repointel", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config, snapshots)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the repointel binary and scratch dir exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("repointel"); err != nil {
		return fmt.Errorf("repointel binary not found in PATH")
	}

	if _, err := os.Stat(config.ScratchDir); os.IsNotExist(err) {
		return fmt.Errorf("scratch directory not found at %s", config.ScratchDir)
	}

	return nil
}

// generateSnapshots writes one synthetic snapshot JSON file per configured size.
// Each snapshot is a layered dependency graph with a sprinkling of back edges
// so cycle detection has real work to do.
func generateSnapshots(config BenchmarkConfig) (map[string]string, error) {
	rng := rand.New(rand.NewSource(42))
	languages := []string{"go", "python", "rust", "typescript"}
	paths := make(map[string]string, len(config.SnapshotSizes))

	for label, fileCount := range config.SnapshotSizes {
		snap := snapshot{
			ID:    fmt.Sprintf("bench-%s", label),
			Repo:  fmt.Sprintf("synthetic/%s", label),
			Files: make([]snapshotFile, 0, fileCount),
		}

		for i := 0; i < fileCount; i++ {
			snap.Files = append(snap.Files, snapshotFile{
				Path:       fmt.Sprintf("pkg%d/file%d.go", i/50, i),
				Language:   languages[rng.Intn(len(languages))],
				LOC:        50 + rng.Intn(1500),
				Cyclomatic: 1 + rng.Intn(40),
				Nesting:    1 + rng.Intn(8),
			})
		}

		// Forward edges within a sliding window, plus occasional back edges.
		for i := 1; i < fileCount; i++ {
			deps := 1 + rng.Intn(4)
			for d := 0; d < deps; d++ {
				target := i - 1 - rng.Intn(min(i, 50))
				snap.Edges = append(snap.Edges, snapshotEdge{
					Source: snap.Files[i].Path,
					Target: snap.Files[target].Path,
				})
			}
			if rng.Intn(100) < 5 {
				forward := i + rng.Intn(min(fileCount-i, 20))
				snap.Edges = append(snap.Edges, snapshotEdge{
					Source: snap.Files[forward].Path,
					Target: snap.Files[i].Path,
				})
			}
		}

		data, err := json.Marshal(snap)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(config.ScratchDir, fmt.Sprintf("snapshot_%s.json", label))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		paths[label] = path
		fmt.Printf("Generated %s snapshot: %d files, %d edges\n", label, fileCount, len(snap.Edges))
	}

	return paths, nil
}

// runBenchmarks executes all benchmark tests across configured snapshots
func runBenchmarks(config BenchmarkConfig, snapshots map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d snapshots, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.SnapshotOrder), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, label := range config.SnapshotOrder {
		fmt.Printf("Benchmarking %s\n", label)
		path := snapshots[label]

		for _, command := range []string{"analyze", "graph", "risk"} {
			result := runBenchmarkSuite(config, label, path, command)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, label, snapshotPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, label)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, snapshotPath, command, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Snapshot:    label,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a repointel command multiple times with the specified
// cache backend and returns the cold time plus warm times
func runBenchmark(config BenchmarkConfig, snapshotPath, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command, snapshotPath,
		"--cache-backend", cacheBackend,
		"--workers", fmt.Sprintf("%d", config.Workers),
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("repointel", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Analysis completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/repointel_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"snapshot", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Snapshot, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "analyze", "Analyze:")
	printCommandSummary(results, "graph", "Graph:")
	printCommandSummary(results, "risk", "Risk:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Snapshot, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
