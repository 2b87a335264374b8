package schedule

import "github.com/kingrea/phaseplan/internal/phase"

// AssignStages groups phases into 1-based execution stages. A phase runs one
// stage after the latest of its declared dependencies, or in stage 1 when it
// has none, so phases in the same stage can run in parallel.
//
// The graph must be acyclic. Phases on a cycle never become ready and are
// absent from the returned map.
func AssignStages(phases []phase.Phase) map[string]int {
	g := newGraph(phases)
	stages := make(map[string]int, g.len())
	byNode := make([]int, g.len())
	for _, i := range g.topoOrder() {
		stage := 1
		for _, dep := range g.requires[i] {
			if byNode[dep]+1 > stage {
				stage = byNode[dep] + 1
			}
		}
		byNode[i] = stage
		stages[g.name(i)] = stage
	}
	return stages
}

// StageGroup lists the phases that share one execution stage.
type StageGroup struct {
	Stage  int      `json:"stage"`
	Phases []string `json:"phases"`
}

// GroupStages turns a stage assignment into ordered groups. Within a group the
// phases keep their declaration order.
func GroupStages(phases []phase.Phase, stages map[string]int) []StageGroup {
	maxStage := 0
	for _, s := range stages {
		if s > maxStage {
			maxStage = s
		}
	}
	if maxStage == 0 {
		return nil
	}
	groups := make([]StageGroup, maxStage)
	for i := range groups {
		groups[i].Stage = i + 1
	}
	seen := make(map[string]struct{}, len(phases))
	for _, p := range phases {
		s, ok := stages[p.Name]
		if !ok {
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		groups[s-1].Phases = append(groups[s-1].Phases, p.Name)
	}
	return groups
}
