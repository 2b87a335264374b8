package planfile

import "github.com/kingrea/phaseplan/internal/schedule"

// AnalyzeFile loads the plan at path and runs the full schedule analysis on
// it. Decoding failures are returned as errors; semantic problems are reported
// inside the Analysis.
func AnalyzeFile(path string) (Plan, schedule.Analysis, error) {
	plan, err := LoadFile(path)
	if err != nil {
		return Plan{}, schedule.Analysis{}, err
	}
	return plan, schedule.Analyze(plan.Phases), nil
}
