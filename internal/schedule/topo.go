package schedule

import "github.com/kingrea/phaseplan/internal/phase"

// TopologicalSort returns the phase names in an order where every declared
// dependency precedes its dependents. Independent phases keep their
// declaration order. Dependencies on undeclared phases are ignored, and phases
// that sit on a cycle are left out of the result; run DetectCycles first when
// a complete ordering is required.
func TopologicalSort(phases []phase.Phase) []string {
	g := newGraph(phases)
	order := g.topoOrder()
	names := make([]string, 0, len(order))
	for _, i := range order {
		names = append(names, g.name(i))
	}
	return names
}

// topoOrder runs Kahn's algorithm with a FIFO queue seeded in declaration
// order.
func (g *graph) topoOrder() []int {
	indeg := make([]int, g.len())
	for i := range g.requires {
		indeg[i] = len(g.requires[i])
	}
	queue := make([]int, 0, g.len())
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]int, 0, g.len())
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, m := range g.dependents[n] {
			indeg[m]--
			if indeg[m] == 0 {
				queue = append(queue, m)
			}
		}
	}
	return order
}
