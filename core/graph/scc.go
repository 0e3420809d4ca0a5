package graph

// computeSCC assigns a strongly-connected-component id to every node using
// Tarjan's algorithm in a single O(V+E) pass. The recursion is unrolled onto
// an explicit stack so that pathological dependency chains cannot overflow
// the goroutine stack.
func (g *Graph) computeSCC() {
	n := len(g.nodes)
	g.sccID = make([]int, n)
	for i := range g.sccID {
		g.sccID[i] = -1
	}

	const unvisited = -1
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var (
		counter   int
		stack     []int // Tarjan's component stack
		compCount int
		sizes     []int
	)

	// frame tracks one node's DFS progress: which out-neighbor to visit next.
	type frame struct {
		node int
		next int
	}

	for start := range n {
		if index[start] != unvisited {
			continue
		}

		work := []frame{{node: start}}
		index[start] = counter
		lowlink[start] = counter
		counter++
		stack = append(stack, start)
		onStack[start] = true

		for len(work) > 0 {
			f := &work[len(work)-1]
			v := f.node

			if f.next < len(g.out[v]) {
				w := g.out[v][f.next]
				f.next++
				if index[w] == unvisited {
					index[w] = counter
					lowlink[w] = counter
					counter++
					stack = append(stack, w)
					onStack[w] = true
					work = append(work, frame{node: w})
				} else if onStack[w] {
					if index[w] < lowlink[v] {
						lowlink[v] = index[w]
					}
				}
				continue
			}

			// v is fully explored; pop and propagate its lowlink to the parent.
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1].node
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}

			if lowlink[v] == index[v] {
				size := 0
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					g.sccID[w] = compCount
					size++
					if w == v {
						break
					}
				}
				sizes = append(sizes, size)
				compCount++
			}
		}
	}

	g.sccSize = sizes
}
