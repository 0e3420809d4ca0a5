package core

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core/algo"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/core/graph"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/extract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/outwriter"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// RunAnalysis executes the full scoring pipeline over an in-memory snapshot:
// graph construction, centrality and complexity (in parallel), per-file
// personalization and risk, suitability ranking and path planning. It holds
// no state between invocations; everything the caller needs is in the result.
func RunAnalysis(ctx context.Context, cfg *contract.Config, snap *schema.Snapshot, profile *schema.SkillProfile) *schema.AnalysisResult {
	profile, invalidSkills := sanitizeProfile(profile)

	g, graphDiag := graph.Build(snap.Files, snap.Edges)

	// Centrality walks edges while complexity walks file metrics; the two
	// phases share no data and run concurrently.
	var centrality algo.CentralityResult
	var complexity complexityOutput
	var wg sync.WaitGroup
	wg.Go(func() { centrality = algo.Centrality(ctx, g) })
	wg.Go(func() { complexity = analyzeComplexity(ctx, cfg, snap.Files) })
	wg.Wait()

	// First record wins for duplicate paths, mirroring the graph builder.
	fileByPath := make(map[string]*schema.FileNode, len(snap.Files))
	for i := range snap.Files {
		if _, ok := fileByPath[snap.Files[i].Path]; !ok {
			fileByPath[snap.Files[i].Path] = &snap.Files[i]
		}
	}

	files := make([]schema.FileAssessment, 0, len(complexity.Scores))
	for i := range g.InternalCount() {
		node := g.Node(i)
		comp, scored := complexity.Scores[node.Path]
		if !scored {
			continue
		}
		f := fileByPath[node.Path]
		cent := centrality.Scores[node.Path]
		p := personalize(profile, f.Language, comp)

		var breakdown map[schema.BreakdownKey]float64
		if cfg.Explain {
			breakdown = make(map[schema.BreakdownKey]float64, 8)
			computeComplexity(f, cfg.ComplexityWeights, breakdown)
			breakdown[schema.BreakdownSkill] = p.Confidence
			breakdown[schema.BreakdownEase] = (100 - p.Adjusted) / 100
		}
		risk := computeRisk(cent, comp, p.Confidence, cfg.RiskWeights, breakdown)

		files = append(files, schema.FileAssessment{
			Path:               node.Path,
			Language:           f.Language,
			Centrality:         cent,
			Complexity:         comp,
			Scored:             true,
			AdjustedComplexity: p.Adjusted,
			SkillConfidence:    p.Confidence,
			SkillLevel:         p.Level,
			Suitability:        p.Suitable,
			SuitabilityTier:    schema.SuitabilityTierFor(p.Suitable),
			RiskScore:          risk,
			RiskTier:           schema.RiskTierFor(risk),
			HighImpact:         cent > schema.HighImpactThreshold,
			InCycle:            g.InCycle(i),
			ComponentID:        g.ComponentID(i),
			DependencyCount:    len(g.InternalDependencies(i)),
			Breakdown:          breakdown,
		})
	}

	ranked := algo.RankBySuitability(files, 0)
	path := algo.PlanPath(buildCandidates(g, ranked, fileByPath))

	return &schema.AnalysisResult{
		SnapshotID: snap.ID,
		UserID:     resolveUserID(cfg, profile),
		AnalyzedAt: time.Now().UTC(),
		Graph:      g.Summary(),
		Centrality: centrality.Scores,
		Complexity: complexity.Scores,
		Files:      ranked,
		Path:       path,
		Diagnostics: schema.RunDiagnostics{
			Graph:            graphDiag,
			ExcludedFiles:    complexity.Excluded,
			InvalidSkills:    invalidSkills,
			NotConverged:     !centrality.Converged,
			Canceled:         centrality.Canceled || complexity.Canceled,
			CentralityRounds: centrality.Iterations,
		},
	}
}

// buildCandidates selects path planner input from the ranked assessments:
// every file above the suitability threshold, with its internal dependency
// references resolved against the graph.
func buildCandidates(g *graph.Graph, ranked []schema.FileAssessment, fileByPath map[string]*schema.FileNode) []algo.Candidate {
	candidates := make([]algo.Candidate, 0, len(ranked))
	for i := range ranked {
		a := &ranked[i]
		if a.Suitability <= schema.PathCandidateThreshold {
			continue
		}
		candidates = append(candidates, algo.Candidate{
			Path:               a.Path,
			Language:           a.Language,
			AdjustedComplexity: a.AdjustedComplexity,
			LinesOfCode:        fileByPath[a.Path].LinesOfCode,
			SkillConfidence:    a.SkillConfidence,
			Dependencies:       g.InternalDependencies(g.Lookup(a.Path)),
		})
	}
	return candidates
}

// resolveUserID prefers the explicit --user flag over the profile's own ID.
func resolveUserID(cfg *contract.Config, profile *schema.SkillProfile) string {
	if cfg.UserID != "" {
		return cfg.UserID
	}
	return profile.UserID
}

// runAnalysisCore loads inputs, consults the memoized result cache and runs
// the pipeline, recording the run when a tracking store is configured.
func runAnalysisCore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.AnalysisResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAnalysisHeader(cfg)
	}

	snap, err := extract.LoadSnapshot(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	profile, err := extract.LoadSkills(cfg.SkillsPath)
	if err != nil {
		return nil, err
	}
	userID := resolveUserID(cfg, profile)

	cache := mgr.GetResultCache()
	if cache != nil && !cfg.NoCache {
		if cached := lookupCachedResult(cache, snap.ID, userID); cached != nil {
			return cached, nil
		}
	}

	// --- Begin run tracking (if configured) ---
	var runID int64
	runStore := mgr.GetRunStore()
	if runStore != nil {
		configParams := map[string]any{
			"snapshot":     cfg.SnapshotPath,
			"user":         userID,
			"workers":      cfg.Workers,
			"result_limit": cfg.ResultLimit,
		}
		runID, err = runStore.BeginRun(time.Now(), snap.ID, userID, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}

	result := RunAnalysis(ctx, cfg, snap, profile)

	// --- End run tracking ---
	if runStore != nil && runID > 0 {
		recordRunResults(ctx, runStore, result)
		if err := runStore.EndRun(runID, time.Now(), len(result.Files)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	// Partial results are never memoized; a rerun should redo the work.
	if cache != nil && !cfg.NoCache && !result.Diagnostics.Canceled {
		storeCachedResult(cache, result)
	}

	return result, nil
}

// lookupCachedResult returns a previously memoized result, or nil on any
// miss or decode failure. Cache trouble is never fatal.
func lookupCachedResult(cache contract.ResultCache, snapshotID, userID string) *schema.AnalysisResult {
	raw, _, err := cache.Get(snapshotID, userID)
	if err != nil || raw == nil {
		return nil
	}
	var result schema.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		contract.LogWarn("Discarding undecodable cached result", err)
		return nil
	}
	return &result
}

func storeCachedResult(cache contract.ResultCache, result *schema.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		contract.LogWarn("Failed to encode result for caching", err)
		return
	}
	if err := cache.Set(result.SnapshotID, result.UserID, raw, result.AnalyzedAt.Unix()); err != nil {
		contract.LogWarn("Failed to cache result", err)
	}
}

// recordRunResults persists each assessment under the run's ID.
func recordRunResults(ctx context.Context, runStore contract.RunStore, result *schema.AnalysisResult) {
	runID, ok := getRunID(ctx)
	if !ok || runID == 0 {
		return
	}
	for i := range result.Files {
		if err := runStore.RecordAssessment(runID, result.Files[i]); err != nil {
			contract.LogWarn("Run tracking failed for "+result.Files[i].Path, err)
			return
		}
	}
}
