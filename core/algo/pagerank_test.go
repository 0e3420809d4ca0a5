package algo

import (
	"context"
	"strconv"
	"testing"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/core/graph"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, paths []string, edges []schema.RawEdge) *graph.Graph {
	t.Helper()
	files := make([]schema.FileNode, 0, len(paths))
	for _, p := range paths {
		files = append(files, schema.FileNode{Path: p, Language: "go"})
	}
	g, diag := graph.Build(files, edges)
	require.Zero(t, diag.MalformedEdges)
	return g
}

// TestCentralityThreeCycle: a symmetric 3-cycle converges with all three
// nodes at the identical maximum score.
func TestCentralityThreeCycle(t *testing.T) {
	g := buildGraph(t, []string{"a.go", "b.go", "c.go"}, []schema.RawEdge{
		{Source: "a.go", Target: "b.go"},
		{Source: "b.go", Target: "c.go"},
		{Source: "c.go", Target: "a.go"},
	})

	res := Centrality(context.Background(), g)
	assert.True(t, res.Converged)
	assert.InDelta(t, 100.0, res.Scores["a.go"], 1e-9)
	assert.Equal(t, res.Scores["a.go"], res.Scores["b.go"])
	assert.Equal(t, res.Scores["b.go"], res.Scores["c.go"])
}

// TestCentralityBounds: every score in [0,100] and isolated nodes exactly 0.
func TestCentralityBounds(t *testing.T) {
	g := buildGraph(t, []string{"a.go", "b.go", "c.go", "d.go", "lonely.go"}, []schema.RawEdge{
		{Source: "a.go", Target: "c.go"},
		{Source: "b.go", Target: "c.go"},
		{Source: "c.go", Target: "d.go"},
		{Source: "lonely.go", Target: "os", External: true},
	})

	res := Centrality(context.Background(), g)
	assert.True(t, res.Converged)
	for path, score := range res.Scores {
		assert.GreaterOrEqual(t, score, 0.0, path)
		assert.LessOrEqual(t, score, 100.0, path)
	}
	assert.Zero(t, res.Scores["lonely.go"], "isolated nodes resolve to exactly 0")
	assert.Greater(t, res.Scores["c.go"], res.Scores["a.go"], "a hub outranks its sources")
}

// TestCentralityStructuralTwins: nodes with identical in and out neighbor
// sets must converge to exactly equal scores under any edge ordering.
func TestCentralityStructuralTwins(t *testing.T) {
	edgesForward := []schema.RawEdge{
		{Source: "root.go", Target: "twin1.go"},
		{Source: "root.go", Target: "twin2.go"},
		{Source: "twin1.go", Target: "sink.go"},
		{Source: "twin2.go", Target: "sink.go"},
		{Source: "other.go", Target: "twin1.go"},
		{Source: "other.go", Target: "twin2.go"},
	}
	edgesReversed := make([]schema.RawEdge, len(edgesForward))
	for i, e := range edgesForward {
		edgesReversed[len(edgesForward)-1-i] = e
	}

	paths := []string{"root.go", "other.go", "twin1.go", "twin2.go", "sink.go"}
	for name, edges := range map[string][]schema.RawEdge{"forward": edgesForward, "reversed": edgesReversed} {
		t.Run(name, func(t *testing.T) {
			g := buildGraph(t, paths, edges)
			res := Centrality(context.Background(), g)
			assert.True(t, res.Converged)
			assert.Equal(t, res.Scores["twin1.go"], res.Scores["twin2.go"],
				"structural twins must score identically, not approximately")
		})
	}
}

// TestCentralitySelfLoopExcluded: a self-loop neither feeds its own score
// nor dilutes the denominator for real out-edges.
func TestCentralitySelfLoopExcluded(t *testing.T) {
	withLoop := buildGraph(t, []string{"a.go", "b.go"}, []schema.RawEdge{
		{Source: "a.go", Target: "a.go"},
		{Source: "a.go", Target: "b.go"},
	})
	without := buildGraph(t, []string{"a.go", "b.go"}, []schema.RawEdge{
		{Source: "a.go", Target: "b.go"},
	})

	resWith := Centrality(context.Background(), withLoop)
	resWithout := Centrality(context.Background(), without)
	assert.Equal(t, resWithout.Scores["b.go"], resWith.Scores["b.go"])
}

// TestCentralityExternalDenominator: external out-edges do not split the
// rank a node passes to its internal dependencies.
func TestCentralityExternalDenominator(t *testing.T) {
	noisy := buildGraph(t, []string{"a.go", "b.go"}, []schema.RawEdge{
		{Source: "a.go", Target: "b.go"},
		{Source: "a.go", Target: "fmt", External: true},
		{Source: "a.go", Target: "os", External: true},
	})
	clean := buildGraph(t, []string{"a.go", "b.go"}, []schema.RawEdge{
		{Source: "a.go", Target: "b.go"},
	})

	resNoisy := Centrality(context.Background(), noisy)
	resClean := Centrality(context.Background(), clean)
	assert.Equal(t, resClean.Scores["b.go"], resNoisy.Scores["b.go"])
}

// TestCentralityEmptyGraph returns an empty, converged result.
func TestCentralityEmptyGraph(t *testing.T) {
	g, _ := graph.Build(nil, nil)
	res := Centrality(context.Background(), g)
	assert.True(t, res.Converged)
	assert.Empty(t, res.Scores)
}

// TestCentralityCancellation stops between rounds and keeps the last
// completed round as a best-effort result.
func TestCentralityCancellation(t *testing.T) {
	paths := make([]string, 200)
	var edges []schema.RawEdge
	for i := range paths {
		paths[i] = "f" + strconv.Itoa(i) + ".go"
	}
	for i := 1; i < len(paths); i++ {
		edges = append(edges, schema.RawEdge{Source: paths[i-1], Target: paths[i]})
	}
	g := buildGraph(t, paths, edges)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Centrality(ctx, g)

	assert.True(t, res.Canceled)
	assert.False(t, res.Converged)
	assert.Len(t, res.Scores, len(paths), "partial results are retained, not discarded")
}

// BenchmarkCentrality measures a full iteration on a moderately dense graph.
func BenchmarkCentrality(b *testing.B) {
	const n = 500
	files := make([]schema.FileNode, n)
	var edges []schema.RawEdge
	for i := range n {
		files[i] = schema.FileNode{Path: "f" + strconv.Itoa(i) + ".go"}
	}
	for i := range n {
		for j := 1; j <= 4; j++ {
			edges = append(edges, schema.RawEdge{
				Source: files[i].Path,
				Target: files[(i*7+j*13)%n].Path,
			})
		}
	}
	g, _ := graph.Build(files, edges)

	for b.Loop() {
		Centrality(context.Background(), g)
	}
}
