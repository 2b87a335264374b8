package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/phaseplan/internal/config"
	"github.com/kingrea/phaseplan/internal/planfile"
	"github.com/kingrea/phaseplan/internal/report"
	"github.com/kingrea/phaseplan/internal/schedule"
	"github.com/kingrea/phaseplan/internal/tui"
)

func (a *app) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create .phaseplan/ with a default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitProjectDir(a.cfg.ProjectDir); err != nil {
				return err
			}
			report.Success(a.out, "initialized %s", a.cfg.StateDir)
			return nil
		},
	}
}

func (a *app) orderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order <plan>",
		Short: "Print a dependency-respecting order of the plan's phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			order := schedule.TopologicalSort(plan.Phases)
			if a.wantJSON() {
				return report.JSON(a.out, map[string]any{"order": order})
			}
			a.printer().Order(order)
			if len(order) < len(plan.Phases) {
				report.Warn(a.errOut, "%d phase(s) omitted because they are part of a dependency cycle", len(plan.Phases)-len(order))
			}
			return nil
		},
	}
}

func (a *app) cyclesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cycles <plan>",
		Short: "Report the first dependency cycle, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			cycle := schedule.DetectCycles(plan.Phases)
			if a.wantJSON() {
				if err := report.JSON(a.out, map[string]any{"cycle": cycle}); err != nil {
					return err
				}
			} else {
				a.printer().Cycle(cycle)
			}
			if cycle != nil {
				return a.reject("%s: cycle %s", args[0], strings.Join(cycle, " -> "))
			}
			return nil
		},
	}
}

func (a *app) stagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stages <plan>",
		Short: "Group the plan's phases into parallel execution stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			if cycle := schedule.DetectCycles(plan.Phases); cycle != nil {
				report.Failure(a.errOut, "cannot stage a cyclic plan: %s", strings.Join(cycle, " -> "))
				return a.reject("%s: cyclic", args[0])
			}
			stages := schedule.AssignStages(plan.Phases)
			groups := schedule.GroupStages(plan.Phases, stages)
			if a.wantJSON() {
				return report.JSON(a.out, map[string]any{"stages": stages, "groups": groups})
			}
			a.printer().Stages(groups)
			return nil
		},
	}
}

func (a *app) conflictsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts <plan>",
		Short: "List files modified by more than one phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			conflicts := schedule.DetectFileConflicts(plan.Phases)
			if a.wantJSON() {
				if conflicts == nil {
					conflicts = []schedule.FileConflict{}
				}
				return report.JSON(a.out, conflicts)
			}
			a.printer().Conflicts(conflicts)
			return nil
		},
	}
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan>",
		Short: "Check for undefined dependencies, cycles and file conflicts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			result := schedule.ValidateDependencies(plan.Phases)
			for _, w := range result.Warnings {
				a.log.Warnf("%s: %s", args[0], w)
			}
			if a.wantJSON() {
				if err := report.JSON(a.out, result); err != nil {
					return err
				}
			} else {
				a.printer().Validation(result)
			}
			if !result.Valid {
				return a.reject("%s: %s", args[0], strings.Join(result.Errors, "; "))
			}
			a.log.Infof("%s: valid", args[0])
			return nil
		},
	}
}

type planAnalysis struct {
	Plan string `json:"plan"`
	schedule.Analysis
}

func (a *app) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [plan...]",
		Short: "Validate and stage plans; with no arguments, every plan in the plans dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				discovered, err := planfile.Discover(a.cfg.PlansDir(), a.cfg.PlanPatterns())
				if err != nil {
					return err
				}
				if len(discovered) == 0 {
					return fmt.Errorf("no plan files found in %s", a.cfg.PlansDir())
				}
				paths = discovered
			}
			results := make([]planAnalysis, 0, len(paths))
			rejected := 0
			for _, path := range paths {
				plan, analysis, err := planfile.AnalyzeFile(a.resolve(path))
				if err != nil {
					a.log.Errorf("analyze %s: %v", path, err)
					return err
				}
				if !analysis.Success {
					rejected++
				}
				a.log.Infof("%s: success=%t phases=%d stages=%d parallelism=%d",
					path, analysis.Success, analysis.TotalPhases, analysis.TotalStages, analysis.MaxParallelism)
				results = append(results, planAnalysis{Plan: plan.Name, Analysis: analysis})
			}
			if a.wantJSON() {
				var err error
				if len(results) == 1 {
					err = report.JSON(a.out, results[0])
				} else {
					err = report.JSON(a.out, results)
				}
				if err != nil {
					return err
				}
			} else {
				printer := a.printer()
				for i, r := range results {
					if i > 0 {
						fmt.Fprintln(a.out)
					}
					printer.Analysis(r.Plan, r.Analysis)
				}
			}
			if rejected > 0 {
				return a.reject("%d of %d plan(s) invalid", rejected, len(results))
			}
			return nil
		},
	}
}

func (a *app) nextCommand() *cobra.Command {
	var (
		completed   []string
		running     []string
		maxParallel int
		batchSize   int
	)
	cmd := &cobra.Command{
		Use:   "next <plan>",
		Short: "List phases that can start now given completed and running phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			req := schedule.RunnableRequest{
				Completed:   completed,
				Running:     running,
				MaxParallel: a.cfg.MaxParallel(),
				BatchSize:   a.cfg.BatchSize(),
			}
			if cmd.Flags().Changed("max-parallel") {
				req.MaxParallel = maxParallel
			}
			if cmd.Flags().Changed("batch-size") {
				req.BatchSize = batchSize
			}
			batch := schedule.Runnable(plan.Phases, req)
			if a.wantJSON() {
				return report.JSON(a.out, batch)
			}
			a.printer().Batch(batch)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&completed, "completed", nil, "phases that already finished")
	cmd.Flags().StringSliceVar(&running, "running", nil, "phases currently executing")
	cmd.Flags().IntVar(&maxParallel, "max-parallel", 0, "cap on concurrently active phases (0 = unlimited)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "cap on phases returned (0 = unlimited)")
	return cmd
}

func (a *app) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <plan>",
		Short: "Browse the plan's stages interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			return tui.Run(tui.NewStageBrowser(plan.Name, plan.Phases, schedule.Analyze(plan.Phases)))
		},
	}
}
