package schedule

import (
	"fmt"
	"strings"

	"github.com/kingrea/phaseplan/internal/phase"
)

// RunnableRequest describes the progress an executor has made through a batch
// and the limits it wants applied to the next dispatch.
type RunnableRequest struct {
	// Completed lists phases that finished successfully.
	Completed []string
	// Running lists phases currently executing so they are not handed out twice.
	Running []string
	// MaxParallel caps how many phases may be active at once, including the
	// ones in Running. Values <= 0 disable the limit.
	MaxParallel int
	// BatchSize limits how many phases are returned. Values <= 0 mean no limit.
	BatchSize int
}

// RunnableBatch is the set of phases that may start now.
type RunnableBatch struct {
	Phases  []string              `json:"phases"`
	Skipped map[string]SkipReason `json:"skipped,omitempty"`
}

// SkipReason explains why a phase was left out of a batch.
type SkipReason struct {
	Reason SkipReasonCode `json:"reason"`
	Detail string         `json:"detail,omitempty"`
}

// SkipReasonCode enumerates skip reasons.
type SkipReasonCode string

const (
	SkipReasonNotReady    SkipReasonCode = "not-ready"
	SkipReasonActive      SkipReasonCode = "already-running"
	SkipReasonConcurrency SkipReasonCode = "concurrency"
	SkipReasonCycle       SkipReasonCode = "cycle"
)

// Runnable returns the phases whose declared dependencies have all completed,
// in topological order, trimmed to the request's limits. It does not start
// anything; the caller owns execution.
func Runnable(phases []phase.Phase, req RunnableRequest) RunnableBatch {
	g := newGraph(phases)
	completed := toSet(req.Completed)
	running := toSet(req.Running)
	limit := req.batchLimit(len(running))
	result := RunnableBatch{Phases: []string{}}

	ordered := make([]bool, g.len())
	for _, i := range g.topoOrder() {
		ordered[i] = true
		name := g.name(i)
		if _, done := completed[name]; done {
			continue
		}
		if _, active := running[name]; active {
			result.addSkip(name, SkipReason{Reason: SkipReasonActive, Detail: "phase already running"})
			continue
		}
		if waiting := g.pending(i, completed); len(waiting) > 0 {
			result.addSkip(name, SkipReason{Reason: SkipReasonNotReady, Detail: "waiting on " + strings.Join(waiting, ", ")})
			continue
		}
		if limit >= 0 && len(result.Phases) >= limit {
			result.addSkip(name, SkipReason{Reason: SkipReasonConcurrency, Detail: req.limitDetail()})
			continue
		}
		result.Phases = append(result.Phases, name)
	}
	for i, ok := range ordered {
		if ok {
			continue
		}
		name := g.name(i)
		if _, done := completed[name]; done {
			continue
		}
		result.addSkip(name, SkipReason{Reason: SkipReasonCycle, Detail: "phase is part of a dependency cycle"})
	}
	return result
}

func (g *graph) pending(i int, completed map[string]struct{}) []string {
	var waiting []string
	for _, dep := range g.requires[i] {
		name := g.name(dep)
		if _, ok := completed[name]; !ok {
			waiting = append(waiting, name)
		}
	}
	return waiting
}

// batchLimit returns the number of phases that may be dispatched, or -1 for no
// limit.
func (req RunnableRequest) batchLimit(runningCount int) int {
	limit := -1
	if req.BatchSize > 0 {
		limit = req.BatchSize
	}
	if req.MaxParallel > 0 {
		remaining := req.MaxParallel - runningCount
		if remaining < 0 {
			remaining = 0
		}
		if limit < 0 || limit > remaining {
			limit = remaining
		}
	}
	return limit
}

func (req RunnableRequest) limitDetail() string {
	if req.MaxParallel > 0 {
		return fmt.Sprintf("max parallel %d reached", req.MaxParallel)
	}
	return fmt.Sprintf("batch size %d reached", req.BatchSize)
}

func (b *RunnableBatch) addSkip(name string, reason SkipReason) {
	if b.Skipped == nil {
		b.Skipped = make(map[string]SkipReason)
	}
	b.Skipped[name] = reason
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
