package graph

import (
	"sort"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// Build assembles the dependency graph from the snapshot's file records and
// raw edges. Nothing here is fatal: malformed edges are dropped and counted,
// unknown targets become synthetic external nodes, duplicates collapse to
// one edge, and cycles are flagged as data rather than rejected.
func Build(files []schema.FileNode, rawEdges []schema.RawEdge) (*Graph, schema.GraphDiagnostics) {
	g := &Graph{index: make(map[string]int, len(files))}
	var diag schema.GraphDiagnostics

	for _, f := range files {
		if f.Path == "" {
			continue
		}
		if _, ok := g.index[f.Path]; ok {
			continue
		}
		g.index[f.Path] = len(g.nodes)
		g.nodes = append(g.nodes, Node{Path: f.Path})
	}
	g.internalCount = len(g.nodes)

	seen := make(map[[2]int]bool, len(rawEdges))
	for _, e := range rawEdges {
		if e.Source == "" || e.Target == "" {
			diag.MalformedEdges++
			continue
		}
		src, ok := g.index[e.Source]
		if !ok || src >= g.internalCount {
			diag.UnknownSources++
			continue
		}

		// An unknown internal target is treated as external; the extractor's
		// flag is advisory, membership in the snapshot decides.
		dst, internal := g.index[e.Target]
		if !internal {
			dst = len(g.nodes)
			g.index[e.Target] = dst
			g.nodes = append(g.nodes, Node{Path: e.Target, External: true})
		}
		external := dst >= g.internalCount

		key := [2]int{src, dst}
		if seen[key] {
			diag.DuplicateEdges++
			continue
		}
		seen[key] = true
		g.edges = append(g.edges, Edge{From: src, To: dst, External: external})
	}

	g.out = make([][]int, len(g.nodes))
	g.in = make([][]int, len(g.nodes))
	for _, e := range g.edges {
		if e.External {
			continue
		}
		g.out[e.From] = append(g.out[e.From], e.To)
		g.in[e.To] = append(g.in[e.To], e.From)
	}
	// Sorted adjacency keeps neighbor iteration order independent of edge
	// input order, which the centrality determinism guarantee relies on.
	for i := range g.nodes {
		sort.Ints(g.out[i])
		sort.Ints(g.in[i])
	}

	g.computeSCC()

	for i := range g.edges {
		e := &g.edges[i]
		if e.External {
			continue
		}
		if g.sccID[e.From] == g.sccID[e.To] && g.sccSize[g.sccID[e.From]] > 1 {
			e.Circular = true
		}
	}

	return g, diag
}

// Summary reduces the graph to its serializable presentation shape.
func (g *Graph) Summary() schema.GraphSummary {
	summary := schema.GraphSummary{
		InternalNodes:      g.internalCount,
		ExternalNodes:      len(g.nodes) - g.internalCount,
		CircularComponents: g.CircularComponents(),
	}
	for _, e := range g.edges {
		if e.External {
			summary.ExternalEdges++
		} else {
			summary.InternalEdges++
		}
	}
	return summary
}
