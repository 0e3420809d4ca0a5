// Package graph builds and represents the file dependency graph.
//
// Nodes live in a flat arena and edges reference arena indices, so traversal
// never chases pointers and cycle membership is attached once at build time
// rather than re-discovered per query.
package graph

import "sort"

// Node is one vertex in the dependency graph. External nodes are synthetic
// placeholders for targets outside the analyzed snapshot; they carry no
// metrics and are excluded from centrality.
type Node struct {
	Path     string
	External bool
}

// Edge is one deduplicated directed edge between arena indices.
type Edge struct {
	From     int
	To       int
	External bool // Target is not a file in the snapshot; the extractor's flag is advisory
	Circular bool // Both endpoints share a strongly connected component of size > 1
}

// Graph is the immutable dependency graph for one snapshot. Both outgoing
// and incoming neighbor lookups are O(1) amortized via index-based
// adjacency slices.
type Graph struct {
	nodes []Node
	index map[string]int

	edges []Edge
	out   [][]int // outgoing neighbor indices, internal edges only
	in    [][]int // incoming neighbor indices, internal edges only

	sccID   []int
	sccSize []int

	internalCount int
}

// Lookup returns the arena index for a path, or -1 when absent.
func (g *Graph) Lookup(path string) int {
	if i, ok := g.index[path]; ok {
		return i
	}
	return -1
}

// NodeCount returns the total number of nodes, external placeholders included.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// InternalCount returns the number of internal (analyzed) nodes.
func (g *Graph) InternalCount() int { return g.internalCount }

// Node returns the node at an arena index.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Edges returns the deduplicated edge list.
func (g *Graph) Edges() []Edge { return g.edges }

// Out returns the internal outgoing neighbor indices of node i.
func (g *Graph) Out(i int) []int { return g.out[i] }

// In returns the internal incoming neighbor indices of node i.
func (g *Graph) In(i int) []int { return g.in[i] }

// ComponentID returns the strongly-connected-component id of node i.
func (g *Graph) ComponentID(i int) int { return g.sccID[i] }

// InCycle reports whether node i belongs to an SCC of size > 1.
func (g *Graph) InCycle(i int) bool { return g.sccSize[g.sccID[i]] > 1 }

// PropagationOutDegree returns the number of distinct internal out-neighbors
// of node i, excluding its own self-loop. This is the denominator used by
// the centrality iteration: external-only out-edges do not dilute rank.
func (g *Graph) PropagationOutDegree(i int) int {
	n := 0
	for _, j := range g.out[i] {
		if j != i {
			n++
		}
	}
	return n
}

// Isolated reports whether an internal node has no internal edges at all,
// in either direction. Isolated nodes are pinned to a centrality of zero.
func (g *Graph) Isolated(i int) bool {
	return len(g.out[i]) == 0 && len(g.in[i]) == 0
}

// InternalDependencies returns the paths of node i's internal out-neighbors,
// self-loops excluded, sorted for determinism.
func (g *Graph) InternalDependencies(i int) []string {
	var deps []string
	for _, j := range g.out[i] {
		if j != i {
			deps = append(deps, g.nodes[j].Path)
		}
	}
	sort.Strings(deps)
	return deps
}

// CircularComponents returns every SCC of size > 1 as a sorted list of node
// paths, with components ordered by their first path.
func (g *Graph) CircularComponents() [][]string {
	byID := make(map[int][]string)
	for i := range g.internalCount {
		id := g.sccID[i]
		if g.sccSize[id] > 1 {
			byID[id] = append(byID[id], g.nodes[i].Path)
		}
	}
	components := make([][]string, 0, len(byID))
	for _, paths := range byID {
		sort.Strings(paths)
		components = append(components, paths)
	}
	sort.Slice(components, func(a, b int) bool {
		return components[a][0] < components[b][0]
	})
	return components
}
