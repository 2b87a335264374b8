package schedule

import "github.com/kingrea/phaseplan/internal/phase"

// DetectCycles reports the first dependency cycle found by a depth-first walk
// over the phases in declaration order. The returned path starts and ends with
// the same phase name, e.g. [A B A], or [A A] for a phase that depends on
// itself. It returns nil when the graph is acyclic. Dependencies on undeclared
// phases are never followed.
func DetectCycles(phases []phase.Phase) []string {
	g := newGraph(phases)
	idx := g.findCycle()
	if idx == nil {
		return nil
	}
	path := make([]string, 0, len(idx))
	for _, i := range idx {
		path = append(path, g.name(i))
	}
	return path
}

func (g *graph) findCycle() []int {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make([]int, g.len())
	stack := make([]int, 0, g.len())
	var cycle []int

	var visit func(u int) bool
	visit = func(u int) bool {
		state[u] = onStack
		stack = append(stack, u)
		// Walk dependencies in the order the phase declared them.
		for _, v := range g.requires[u] {
			switch state[v] {
			case unvisited:
				if visit(v) {
					return true
				}
			case onStack:
				start := 0
				for i, n := range stack {
					if n == v {
						start = i
						break
					}
				}
				cycle = append(cycle, stack[start:]...)
				cycle = append(cycle, v)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		state[u] = done
		return false
	}

	for i := 0; i < g.len(); i++ {
		if state[i] != unvisited {
			continue
		}
		if visit(i) {
			return cycle
		}
	}
	return nil
}
