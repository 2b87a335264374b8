// Package report renders schedule results for humans (lipgloss-styled text)
// and for machines (indented JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/phaseplan/internal/schedule"
)

// Options tunes text rendering.
type Options struct {
	Color bool
}

// Printer writes reports to a single destination.
type Printer struct {
	w      io.Writer
	title  lipgloss.Style
	label  lipgloss.Style
	detail lipgloss.Style
	bad    lipgloss.Style
	warn   lipgloss.Style
	good   lipgloss.Style
}

// New builds a Printer for w. Styles degrade to plain text when color is
// disabled or w is not a terminal.
func New(w io.Writer, opts Options) *Printer {
	p := &Printer{w: w}
	if !opts.Color {
		plain := lipgloss.NewStyle()
		p.title, p.label, p.detail, p.bad, p.warn, p.good = plain, plain, plain, plain, plain, plain
		return p
	}
	r := lipgloss.NewRenderer(w)
	p.title = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	p.label = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC"))
	p.detail = r.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	p.bad = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	p.warn = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	p.good = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	return p
}

// Analysis renders a full plan analysis.
func (p *Printer) Analysis(name string, a schedule.Analysis) {
	if name != "" {
		p.line(p.title.Render("Plan: " + name))
	}
	if a.Success {
		p.Stages(a.Groups)
	}
	p.diagnostics(a.Errors, a.Warnings)
	if !a.Success {
		p.line(p.bad.Render(fmt.Sprintf("invalid plan: %d error(s)", len(a.Errors))))
		return
	}
	p.line(p.good.Render(fmt.Sprintf("%d phases · %d stages · max parallelism %d",
		a.TotalPhases, a.TotalStages, a.MaxParallelism)))
}

// Validation renders a validation verdict.
func (p *Printer) Validation(result schedule.ValidationResult) {
	p.diagnostics(result.Errors, result.Warnings)
	if result.Valid {
		p.line(p.good.Render("valid"))
		return
	}
	p.line(p.bad.Render("invalid"))
}

// Order renders a topological order as a numbered list.
func (p *Printer) Order(names []string) {
	if len(names) == 0 {
		p.line(p.detail.Render("no phases"))
		return
	}
	width := len(fmt.Sprint(len(names)))
	for i, name := range names {
		p.line(fmt.Sprintf("%s %s", p.label.Render(fmt.Sprintf("%*d.", width, i+1)), name))
	}
}

// Cycle renders a cycle path, or a note that there is none.
func (p *Printer) Cycle(cycle []string) {
	if cycle == nil {
		p.line(p.good.Render("no cycles"))
		return
	}
	p.line(p.bad.Render("cycle: ") + strings.Join(cycle, " -> "))
}

// Stages renders stage groups, one line per stage.
func (p *Printer) Stages(groups []schedule.StageGroup) {
	if len(groups) == 0 {
		p.line(p.detail.Render("no stages"))
		return
	}
	for _, g := range groups {
		p.line(fmt.Sprintf("%s %s", p.label.Render(fmt.Sprintf("Stage %d", g.Stage)), strings.Join(g.Phases, ", ")))
	}
}

// Conflicts renders file conflict records.
func (p *Printer) Conflicts(conflicts []schedule.FileConflict) {
	if len(conflicts) == 0 {
		p.line(p.good.Render("no file conflicts"))
		return
	}
	for _, c := range conflicts {
		p.line(fmt.Sprintf("%s %s", p.warn.Render(c.File), p.detail.Render(fmt.Sprintf("(%d) %s", c.Count, strings.Join(c.Phases, ", ")))))
	}
}

// Batch renders a runnable batch with the reasons for skipped phases.
func (p *Printer) Batch(batch schedule.RunnableBatch) {
	if len(batch.Phases) == 0 {
		p.line(p.detail.Render("nothing runnable"))
	} else {
		p.line(p.good.Render("runnable: ") + strings.Join(batch.Phases, ", "))
	}
	names := make([]string, 0, len(batch.Skipped))
	for name := range batch.Skipped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		reason := batch.Skipped[name]
		p.line(fmt.Sprintf("  %s %s", p.label.Render(name), p.detail.Render(fmt.Sprintf("[%s] %s", reason.Reason, reason.Detail))))
	}
}

func (p *Printer) diagnostics(errs, warnings []string) {
	for _, e := range errs {
		p.line(p.bad.Render("error: ") + e)
	}
	for _, w := range warnings {
		p.line(p.warn.Render("warning: ") + w)
	}
}

func (p *Printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
