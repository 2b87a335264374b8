package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/phaseplan/internal/phase"
	"github.com/kingrea/phaseplan/internal/schedule"
)

func testPhases() []phase.Phase {
	return []phase.Phase{
		phase.New("schema").WithFiles("db.sql"),
		phase.New("api", "schema").WithFiles("routes.go"),
		phase.New("docs", "schema"),
	}
}

func TestStageBrowserListsPhasesByStage(t *testing.T) {
	phases := testPhases()
	b := NewStageBrowser("demo", phases, schedule.Analyze(phases))
	require.Len(t, b.list.Items(), 3)
	first := b.list.Items()[0].(phaseItem)
	assert.Equal(t, "schema", first.name)
	assert.Equal(t, "stage 1 · 1 file(s)", first.Description())
	second := b.list.Items()[1].(phaseItem)
	assert.Equal(t, "stage 2 · after schema · 1 file(s)", second.Description())

	view := b.View()
	assert.Contains(t, view, "3 phases · 2 stages · max parallelism 2")
}

func TestStageBrowserToggleDetailAndQuit(t *testing.T) {
	phases := testPhases()
	b := NewStageBrowser("demo", phases, schedule.Analyze(phases))
	model, _ := b.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	b = model.(*StageBrowser)
	assert.Equal(t, 100, b.width)

	model, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	b = model.(*StageBrowser)
	assert.True(t, b.showDetail)
	assert.Contains(t, b.View(), "Depends on: none")

	_, cmd = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStageBrowserShowsErrorsForInvalidPlan(t *testing.T) {
	phases := []phase.Phase{phase.New("a", "b"), phase.New("b", "a")}
	b := NewStageBrowser("cyclic", phases, schedule.Analyze(phases))
	assert.Empty(t, b.list.Items())
	view := b.View()
	assert.Contains(t, view, "Plan is invalid")
	assert.Contains(t, view, "circular dependency detected")
}
