package schedule

import (
	"fmt"
	"strings"

	"github.com/kingrea/phaseplan/internal/phase"
)

// ValidationResult is the verdict for a phase batch. Errors make the batch
// unsafe to execute; warnings flag risk without blocking it.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateDependencies checks a batch for dependencies on undeclared phases and
// for circular dependencies, and warns about files modified by more than one
// phase. All checks run; nothing short-circuits.
func ValidateDependencies(phases []phase.Phase) ValidationResult {
	result := ValidationResult{Errors: []string{}, Warnings: []string{}}
	g := newGraph(phases)
	for _, p := range phases {
		for _, dep := range p.Dependencies {
			if g.declared(dep) {
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("phase %q depends on undefined phase %q", p.Name, dep))
		}
	}
	if cycle := DetectCycles(phases); cycle != nil {
		result.Errors = append(result.Errors, "circular dependency detected: "+strings.Join(cycle, " -> "))
	}
	for _, c := range DetectFileConflicts(phases) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("file conflict: %q is modified by %d phases (%s)", c.File, c.Count, strings.Join(c.Phases, ", ")))
	}
	result.Valid = len(result.Errors) == 0
	return result
}
