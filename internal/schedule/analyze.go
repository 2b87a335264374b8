package schedule

import "github.com/kingrea/phaseplan/internal/phase"

// Summary is the compact shape of a staged plan.
type Summary struct {
	TotalPhases    int `json:"total_phases"`
	TotalStages    int `json:"total_stages"`
	MaxParallelism int `json:"max_parallelism"`
}

// Analysis wraps a Summary with the validation verdict. Staging fields stay
// zero when the plan is invalid because a cyclic or dangling graph has no
// meaningful stages.
type Analysis struct {
	Success  bool     `json:"success"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Summary
	Order     []string       `json:"order,omitempty"`
	Stages    map[string]int `json:"stages,omitempty"`
	Groups    []StageGroup   `json:"groups,omitempty"`
	Conflicts []FileConflict `json:"conflicts,omitempty"`
}

// Analyze validates the batch and, when it is valid, stages it.
func Analyze(phases []phase.Phase) Analysis {
	verdict := ValidateDependencies(phases)
	analysis := Analysis{
		Success:   verdict.Valid,
		Errors:    verdict.Errors,
		Warnings:  verdict.Warnings,
		Conflicts: DetectFileConflicts(phases),
	}
	if !verdict.Valid {
		return analysis
	}
	analysis.Order = TopologicalSort(phases)
	analysis.Stages = AssignStages(phases)
	analysis.Groups = GroupStages(phases, analysis.Stages)
	analysis.Summary = summarize(phases, analysis.Groups)
	return analysis
}

// Summarize stages the batch without validating it. Callers are expected to
// have rejected cyclic batches already.
func Summarize(phases []phase.Phase) Summary {
	return summarize(phases, GroupStages(phases, AssignStages(phases)))
}

func summarize(phases []phase.Phase, groups []StageGroup) Summary {
	summary := Summary{TotalPhases: len(phases), TotalStages: len(groups)}
	for _, g := range groups {
		if len(g.Phases) > summary.MaxParallelism {
			summary.MaxParallelism = len(g.Phases)
		}
	}
	return summary
}
