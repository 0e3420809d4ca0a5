// Package core has core logic for graph analysis, scoring and ranking.
package core

import (
	"context"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core/algo"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/outwriter"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteAnalyze runs the full analysis and prints the suitability-ranked
// file assessments. It serves as the main entry point for 'analyze'.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := runAnalysisCore(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := algo.RankBySuitability(result.Files, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.PrintAssessments(ranked, result.Diagnostics, cfg, duration)
}

// ExecuteGraph runs the analysis and prints the structural view: graph
// counts, circular components and the centrality ranking.
func ExecuteGraph(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := runAnalysisCore(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	central := algo.RankByCentrality(result.Files, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.PrintGraphResults(result.Graph, central, result.Diagnostics, cfg, duration)
}

// ExecutePath runs the analysis and prints the planned contribution path.
func ExecutePath(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := runAnalysisCore(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintPathResults(result.Path, cfg, duration)
}

// ExecuteRisk runs the analysis and prints the risk-ranked assessments.
func ExecuteRisk(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := runAnalysisCore(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := algo.RankByRisk(result.Files, cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.PrintRiskResults(ranked, cfg, duration)
}

// ExecuteMetrics displays the formal definitions of all scoring formulas.
// This is a static display that does not require a snapshot.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.PrintMetricsDefinitions(cfg)
}

// AnalyzeForTools runs the analysis with headers suppressed, for callers
// that serve results over a protocol rather than a terminal.
func AnalyzeForTools(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.AnalysisResult, error) {
	return runAnalysisCore(withSuppressHeader(ctx), cfg, mgr)
}
