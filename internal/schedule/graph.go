package schedule

import "github.com/kingrea/phaseplan/internal/phase"

// graph is the per-call canonical view of a phase batch. Nodes are indexed by
// declaration position; edges run from a dependency to its dependents.
type graph struct {
	phases []phase.Phase
	// index maps a name to its last declaration.
	index map[string]int
	// dependents[i] lists, in declaration order, the nodes that depend on i.
	dependents [][]int
	// requires[i] lists the declared dependencies of i as node indices.
	requires [][]int
}

func newGraph(phases []phase.Phase) *graph {
	g := &graph{
		phases:     phases,
		index:      make(map[string]int, len(phases)),
		dependents: make([][]int, len(phases)),
		requires:   make([][]int, len(phases)),
	}
	for i, p := range phases {
		g.index[p.Name] = i
	}
	for i, p := range phases {
		for _, dep := range p.Dependencies {
			src, ok := g.index[dep]
			if !ok {
				continue
			}
			g.requires[i] = append(g.requires[i], src)
			g.dependents[src] = append(g.dependents[src], i)
		}
	}
	return g
}

func (g *graph) len() int {
	return len(g.phases)
}

func (g *graph) name(i int) string {
	return g.phases[i].Name
}

func (g *graph) declared(name string) bool {
	_, ok := g.index[name]
	return ok
}
