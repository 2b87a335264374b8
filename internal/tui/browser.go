package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/phaseplan/internal/phase"
	"github.com/kingrea/phaseplan/internal/schedule"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	detailBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// phaseItem implements list.Item for one staged phase.
type phaseItem struct {
	name  string
	stage int
	deps  []string
	files []string
}

func (i phaseItem) Title() string { return i.name }

func (i phaseItem) Description() string {
	parts := []string{fmt.Sprintf("stage %d", i.stage)}
	if len(i.deps) > 0 {
		parts = append(parts, "after "+strings.Join(i.deps, ", "))
	}
	if len(i.files) > 0 {
		parts = append(parts, fmt.Sprintf("%d file(s)", len(i.files)))
	}
	return strings.Join(parts, " · ")
}

func (i phaseItem) FilterValue() string { return i.name }

// StageBrowser is a bubbletea model that lists a plan's phases grouped by
// stage. Invalid plans show their errors instead.
type StageBrowser struct {
	title      string
	analysis   schedule.Analysis
	phases     map[string]phase.Phase
	list       list.Model
	showDetail bool
	width      int
	height     int
}

// NewStageBrowser builds the browser for an analyzed plan.
func NewStageBrowser(title string, phases []phase.Phase, analysis schedule.Analysis) *StageBrowser {
	byName := make(map[string]phase.Phase, len(phases))
	for _, p := range phases {
		byName[p.Name] = p
	}
	var items []list.Item
	for _, g := range analysis.Groups {
		for _, name := range g.Phases {
			p := byName[name]
			items = append(items, phaseItem{name: name, stage: g.Stage, deps: p.Dependencies, files: p.FilesModified})
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = title
	return &StageBrowser{
		title:    title,
		analysis: analysis,
		phases:   byName,
		list:     l,
		width:    80,
		height:   24,
	}
}

// Init is called once when the program starts.
func (b *StageBrowser) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (b *StageBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.list.SetSize(max(0, msg.Width-2), max(0, msg.Height-8))
		return b, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return b, tea.Quit
		case "q":
			if b.list.FilterState() != list.Filtering {
				return b, tea.Quit
			}
		case "enter":
			if b.list.FilterState() != list.Filtering {
				b.showDetail = !b.showDetail
				return b, nil
			}
		}
	}
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

// View renders the current screen.
func (b *StageBrowser) View() string {
	if !b.analysis.Success {
		lines := []string{headerStyle.Render(b.title), errorStyle.Render("Plan is invalid; stages are unavailable.")}
		for _, e := range b.analysis.Errors {
			lines = append(lines, errorStyle.Render("• ")+e)
		}
		lines = append(lines, "", footerStyle.Render("q to quit"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	sections := []string{b.list.View()}
	if b.showDetail {
		sections = append(sections, b.renderDetail())
	}
	summary := fmt.Sprintf("%d phases · %d stages · max parallelism %d",
		b.analysis.TotalPhases, b.analysis.TotalStages, b.analysis.MaxParallelism)
	sections = append(sections, detailStyle.Render(summary))
	for _, w := range b.analysis.Warnings {
		sections = append(sections, warnStyle.Render("! "+w))
	}
	sections = append(sections, footerStyle.Render("enter details · / filter · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (b *StageBrowser) renderDetail() string {
	item, ok := b.list.SelectedItem().(phaseItem)
	if !ok {
		return ""
	}
	lines := []string{headerStyle.Render(item.name), fmt.Sprintf("Stage: %d", item.stage)}
	if len(item.deps) == 0 {
		lines = append(lines, "Depends on: none")
	} else {
		lines = append(lines, "Depends on: "+strings.Join(item.deps, ", "))
	}
	if len(item.files) > 0 {
		lines = append(lines, "Files:")
		for _, f := range item.files {
			lines = append(lines, "  "+f)
		}
	}
	return detailBorder.Width(max(20, b.width-4)).Render(strings.Join(lines, "\n"))
}

// Run starts the browser as a full-screen program.
func Run(b *StageBrowser) error {
	p := tea.NewProgram(b, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
