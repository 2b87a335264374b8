// internal/config/config.go
//
// This package handles configuration and the .phaseplan directory structure.
// Every project that plans phases with phaseplan gets a .phaseplan/ folder in
// its root holding config.yaml and the log directory.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in each project
	ProjectDirName = ".phaseplan"

	defaultPlansDir = "PRPs"

	FormatText = "text"
	FormatJSON = "json"
)

const defaultProjectConfigYAML = `# phaseplan project configuration
version: 1

# Where plan files live, relative to the project root.
plans:
  dir: PRPs
  patterns: ["*.md", "*.yaml", "*.yml"]

# Report rendering. format is text or json.
output:
  format: text
  color: true

# Limits applied when asking for the next runnable batch. 0 means unlimited.
schedule:
  max_parallel: 0
  batch_size: 0
`

// PlansConfig locates plan files.
type PlansConfig struct {
	Dir      string   `yaml:"dir"`
	Patterns []string `yaml:"patterns,omitempty"`
}

// OutputConfig controls how reports are rendered.
type OutputConfig struct {
	Format string `yaml:"format"`
	Color  *bool  `yaml:"color,omitempty"`
}

// ScheduleConfig carries the runnable-batch limits.
type ScheduleConfig struct {
	MaxParallel int `yaml:"max_parallel"`
	BatchSize   int `yaml:"batch_size"`
}

// ProjectConfig models .phaseplan/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Plans    PlansConfig    `yaml:"plans"`
	Output   OutputConfig   `yaml:"output"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

// Config holds the runtime configuration for phaseplan.
type Config struct {
	// ProjectDir is the directory phaseplan was run from
	ProjectDir string

	// StateDir is ProjectDir/.phaseplan
	StateDir string

	Project ProjectConfig
}

// InitProjectDir creates the .phaseplan directory structure in the given
// project directory and writes a default config.yaml when none exists.
//
// Structure created:
// .phaseplan/
// ├── config.yaml
// └── logs/
func InitProjectDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, ProjectDirName)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", stateDir, err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig creates a Config for projectDir. A missing config.yaml is not an
// error; defaults apply.
func NewConfig(projectDir string) (*Config, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", projectDir, err)
	}
	cfg := &Config{
		ProjectDir: abs,
		StateDir:   filepath.Join(abs, ProjectDirName),
		Project:    defaultProjectConfig(),
	}
	cfg.Project.normalize(abs)
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// PlansDir returns the absolute directory plan discovery scans.
func (c *Config) PlansDir() string {
	return c.Project.Plans.Dir
}

// PlanPatterns returns the globs used for plan discovery.
func (c *Config) PlanPatterns() []string {
	return c.Project.Plans.Patterns
}

// OutputFormat returns text or json.
func (c *Config) OutputFormat() string {
	return c.Project.Output.Format
}

// ColorEnabled reports whether styled output is allowed.
func (c *Config) ColorEnabled() bool {
	return c.Project.Output.Color == nil || *c.Project.Output.Color
}

// MaxParallel returns the configured concurrency cap (0 = unlimited).
func (c *Config) MaxParallel() int {
	return c.Project.Schedule.MaxParallel
}

// BatchSize returns the configured batch limit (0 = unlimited).
func (c *Config) BatchSize() int {
	return c.Project.Schedule.BatchSize
}

// SetOutputFormat updates the report format and persists it back to
// .phaseplan/config.yaml.
func (c *Config) SetOutputFormat(format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("config: output format must be %q or %q", FormatText, FormatJSON)
	}
	c.Project.Output.Format = format
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Plans: PlansConfig{
			Dir:      defaultPlansDir,
			Patterns: []string{"*.md", "*.yaml", "*.yml"},
		},
		Output: OutputConfig{Format: FormatText},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Plans.Dir) == "" {
		pc.Plans.Dir = defaultPlansDir
	}
	if len(pc.Plans.Patterns) == 0 {
		pc.Plans.Patterns = []string{"*.md", "*.yaml", "*.yml"}
	}
	if strings.TrimSpace(pc.Output.Format) == "" {
		pc.Output.Format = FormatText
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Plans.Dir = resolvePath(base, pc.Plans.Dir)
	patterns := pc.Plans.Patterns[:0]
	for _, pattern := range pc.Plans.Patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		patterns = append(patterns, pattern)
	}
	pc.Plans.Patterns = patterns
	pc.Output.Format = strings.ToLower(strings.TrimSpace(pc.Output.Format))
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %q or %q", FormatText, FormatJSON)
	}
	if pc.Schedule.MaxParallel < 0 {
		return fmt.Errorf("schedule.max_parallel must be >= 0")
	}
	if pc.Schedule.BatchSize < 0 {
		return fmt.Errorf("schedule.batch_size must be >= 0")
	}
	for i, pattern := range pc.Plans.Patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("plans.patterns[%d]: %w", i, err)
		}
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	out := c.Project
	if rel, err := filepath.Rel(c.ProjectDir, out.Plans.Dir); err == nil && !strings.HasPrefix(rel, "..") {
		out.Plans.Dir = rel
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
