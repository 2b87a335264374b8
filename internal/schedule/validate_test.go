package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/phaseplan/internal/phase"
)

func TestValidateDependenciesEmptyBatch(t *testing.T) {
	result := ValidateDependencies(nil)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateDependenciesUndefined(t *testing.T) {
	result := ValidateDependencies([]phase.Phase{phase.New("build"), phase.New("deploy", "build", "approve")})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "undefined")
	assert.Contains(t, result.Errors[0], "deploy")
	assert.Contains(t, result.Errors[0], "approve")
}

func TestValidateDependenciesCircular(t *testing.T) {
	result := ValidateDependencies([]phase.Phase{phase.New("A", "B"), phase.New("B", "A")})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "circular")
	assert.Contains(t, result.Errors[0], "A -> B -> A")
}

func TestValidateDependenciesAccumulatesErrors(t *testing.T) {
	result := ValidateDependencies([]phase.Phase{
		phase.New("A", "B"),
		phase.New("B", "A", "missing"),
	})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "undefined")
	assert.Contains(t, result.Errors[1], "circular")
}

func TestValidateDependenciesConflictIsOnlyAWarning(t *testing.T) {
	result := ValidateDependencies([]phase.Phase{
		phase.New("P1").WithFiles("x", "y"),
		phase.New("P2").WithFiles("x", "z"),
	})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "conflict")
	assert.Contains(t, result.Warnings[0], `"x"`)
}

func TestAnalyzeValidPlan(t *testing.T) {
	analysis := Analyze(diamond())
	assert.True(t, analysis.Success)
	assert.Empty(t, analysis.Errors)
	assert.Equal(t, Summary{TotalPhases: 4, TotalStages: 3, MaxParallelism: 2}, analysis.Summary)
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 2, "D": 3}, analysis.Stages)
	assert.Equal(t, []string{"A", "B", "C", "D"}, analysis.Order)
	assert.Len(t, analysis.Groups, 3)
}

func TestAnalyzeInvalidPlanOmitsStaging(t *testing.T) {
	analysis := Analyze([]phase.Phase{phase.New("A", "B"), phase.New("B", "A")})
	assert.False(t, analysis.Success)
	require.Len(t, analysis.Errors, 1)
	assert.Zero(t, analysis.Summary)
	assert.Nil(t, analysis.Stages)
	assert.Nil(t, analysis.Groups)
}

func TestAnalyzeEmptyPlan(t *testing.T) {
	analysis := Analyze(nil)
	assert.True(t, analysis.Success)
	assert.Equal(t, Summary{}, analysis.Summary)
}

func TestAnalyzeKeepsConflictWarnings(t *testing.T) {
	analysis := Analyze([]phase.Phase{
		phase.New("P1").WithFiles("x"),
		phase.New("P2").WithFiles("x"),
	})
	assert.True(t, analysis.Success)
	assert.Len(t, analysis.Warnings, 1)
	assert.Len(t, analysis.Conflicts, 1)
	assert.Equal(t, Summary{TotalPhases: 2, TotalStages: 1, MaxParallelism: 2}, analysis.Summary)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{TotalPhases: 4, TotalStages: 3, MaxParallelism: 2}, Summarize(diamond()))
	assert.Equal(t, Summary{}, Summarize(nil))
}
