// Package cli wires the schedule, planfile and report packages into the
// phaseplan command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kingrea/phaseplan/internal/config"
	"github.com/kingrea/phaseplan/internal/logging"
	"github.com/kingrea/phaseplan/internal/planfile"
	"github.com/kingrea/phaseplan/internal/report"
)

// ErrPlanRejected is returned when a command ran to completion but the plan it
// inspected is invalid (cyclic, dangling dependencies). The binary maps it to
// exit status 1.
var ErrPlanRejected = errors.New("plan rejected")

type app struct {
	out        io.Writer
	errOut     io.Writer
	projectDir string
	jsonOut    bool

	cfg *config.Config
	log *logging.Logger
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	return a.rootCommand()
}

// Execute runs the command tree with args and releases resources afterwards.
func Execute(args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut}
	defer a.close()
	root := a.rootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "phaseplan",
		Short: "Order, stage and validate dependent work phases",
		Long: `phaseplan reads a plan of named phases, each with prerequisite phases and
the files it modifies, and reports a dependency-respecting order, parallel
execution stages, dependency cycles and file conflicts.

Examples:
  phaseplan validate PRPs/auth.md
  phaseplan stages plan.yaml
  phaseplan next plan.yaml --completed schema,api
  phaseplan analyze --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVarP(&a.projectDir, "dir", "C", ".", "project directory holding .phaseplan/")
	root.PersistentFlags().BoolVarP(&a.jsonOut, "json", "j", false, "print JSON instead of text")

	root.AddCommand(
		a.initCommand(),
		a.orderCommand(),
		a.cyclesCommand(),
		a.stagesCommand(),
		a.conflictsCommand(),
		a.validateCommand(),
		a.analyzeCommand(),
		a.nextCommand(),
		a.viewCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewConfig(a.projectDir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if info, statErr := os.Stat(cfg.StateDir); statErr == nil && info.IsDir() {
		logger, logErr := logging.New(cfg.ProjectDir)
		if logErr != nil {
			report.Warn(a.errOut, "logging disabled: %v", logErr)
		} else {
			a.log = logger
			a.log.Infof("%s", cmd.CommandPath())
		}
	}
	return nil
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Close()
		a.log = nil
	}
}

func (a *app) wantJSON() bool {
	return a.jsonOut || (a.cfg != nil && a.cfg.OutputFormat() == config.FormatJSON)
}

func (a *app) printer() *report.Printer {
	color := a.cfg == nil || a.cfg.ColorEnabled()
	return report.New(a.out, report.Options{Color: color})
}

// resolve returns path as given when it exists relative to the working
// directory, and joined onto the project directory otherwise.
func (a *app) resolve(path string) string {
	if filepath.IsAbs(path) || a.cfg == nil {
		return path
	}
	if _, err := os.Stat(path); err != nil {
		return filepath.Join(a.cfg.ProjectDir, path)
	}
	return path
}

func (a *app) loadPlan(path string) (planfile.Plan, error) {
	plan, err := planfile.LoadFile(a.resolve(path))
	if err != nil {
		a.log.Errorf("load %s: %v", path, err)
		return planfile.Plan{}, err
	}
	a.log.Infof("loaded %s: %d phases", plan.Path, len(plan.Phases))
	return plan, nil
}

func (a *app) reject(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	a.log.Warnf("%s", msg)
	return fmt.Errorf("%w: %s", ErrPlanRejected, msg)
}
