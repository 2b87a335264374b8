package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kingrea/phaseplan/internal/phase"
)

func TestRunnableReturnsConcurrentReadyPhases(t *testing.T) {
	batch := Runnable(diamond(), RunnableRequest{Completed: []string{"A"}})
	assert.Equal(t, []string{"B", "C"}, batch.Phases)
	assert.Equal(t, SkipReasonNotReady, batch.Skipped["D"].Reason)
	assert.Contains(t, batch.Skipped["D"].Detail, "B, C")
}

func TestRunnableFromScratch(t *testing.T) {
	batch := Runnable(diamond(), RunnableRequest{})
	assert.Equal(t, []string{"A"}, batch.Phases)
	assert.Len(t, batch.Skipped, 3)
}

func TestRunnableRespectsLimits(t *testing.T) {
	batch := Runnable(diamond(), RunnableRequest{Completed: []string{"A"}, BatchSize: 1})
	assert.Equal(t, []string{"B"}, batch.Phases)
	assert.Equal(t, SkipReasonConcurrency, batch.Skipped["C"].Reason)

	batch = Runnable(diamond(), RunnableRequest{Completed: []string{"A"}, Running: []string{"B"}, MaxParallel: 1})
	assert.Empty(t, batch.Phases)
	assert.Equal(t, SkipReasonActive, batch.Skipped["B"].Reason)
	assert.Equal(t, SkipReasonConcurrency, batch.Skipped["C"].Reason)
	assert.Equal(t, "max parallel 1 reached", batch.Skipped["C"].Detail)
}

func TestRunnableFlagsCyclicPhases(t *testing.T) {
	phases := []phase.Phase{phase.New("a"), phase.New("x", "y"), phase.New("y", "x")}
	batch := Runnable(phases, RunnableRequest{})
	assert.Equal(t, []string{"a"}, batch.Phases)
	assert.Equal(t, SkipReasonCycle, batch.Skipped["x"].Reason)
	assert.Equal(t, SkipReasonCycle, batch.Skipped["y"].Reason)
}

func TestRunnableAllComplete(t *testing.T) {
	batch := Runnable(diamond(), RunnableRequest{Completed: []string{"A", "B", "C", "D"}})
	assert.Empty(t, batch.Phases)
	assert.Empty(t, batch.Skipped)
}
