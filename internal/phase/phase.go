package phase

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidInput marks a phase record whose fields do not match any of the
// accepted encodings.
var ErrInvalidInput = errors.New("phase: invalid input")

// legacyNone is the string some upstream plan writers emit for "no
// dependencies". Matching is case-sensitive.
const legacyNone = "None"

// Phase is a named unit of work with prerequisite phases and the files it
// intends to modify.
type Phase struct {
	Name          string   `json:"name" yaml:"name"`
	Dependencies  []string `json:"dependencies" yaml:"dependencies"`
	FilesModified []string `json:"files_modified,omitempty" yaml:"files_modified,omitempty"`
}

// New builds a phase with the given dependencies. It is meant for callers that
// assemble plans in code rather than decoding them.
func New(name string, deps ...string) Phase {
	return Phase{Name: name, Dependencies: dedupe(deps)}
}

// WithFiles returns a copy of the phase that modifies the given files.
func (p Phase) WithFiles(files ...string) Phase {
	clone := p.Clone()
	clone.FilesModified = trimSet(files)
	return clone
}

// Clone returns a deep copy of the phase.
func (p Phase) Clone() Phase {
	return Phase{
		Name:          p.Name,
		Dependencies:  cloneStrings(p.Dependencies),
		FilesModified: cloneStrings(p.FilesModified),
	}
}

// DependsOn reports whether name is one of the phase's prerequisites.
func (p Phase) DependsOn(name string) bool {
	for _, dep := range p.Dependencies {
		if dep == name {
			return true
		}
	}
	return false
}

// UnmarshalYAML decodes a phase through the same normalization rules as
// FromRecord, so YAML, JSON and frontmatter plans behave identically.
func (p *Phase) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: phase must be a mapping", ErrInvalidInput, node.Line)
	}
	var record map[string]any
	if err := node.Decode(&record); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidInput, node.Line, err)
	}
	parsed, err := FromRecord(record)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = parsed
	return nil
}

// FromRecord builds a phase from a generic decoded record with the keys
// "name", "dependencies" and "files_modified".
func FromRecord(record map[string]any) (Phase, error) {
	if record == nil {
		return Phase{}, fmt.Errorf("%w: phase record is empty", ErrInvalidInput)
	}
	rawName, ok := record["name"]
	if !ok {
		return Phase{}, fmt.Errorf("%w: phase name is required", ErrInvalidInput)
	}
	name, ok := rawName.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return Phase{}, fmt.Errorf("%w: phase name must be a non-empty string, got %#v", ErrInvalidInput, rawName)
	}
	deps, err := NormalizeDependencies(record["dependencies"])
	if err != nil {
		return Phase{}, fmt.Errorf("phase %q: dependencies: %w", name, err)
	}
	files, err := NormalizeFiles(record["files_modified"])
	if err != nil {
		return Phase{}, fmt.Errorf("phase %q: files_modified: %w", name, err)
	}
	return Phase{Name: name, Dependencies: deps, FilesModified: files}, nil
}

// FromRecords converts a batch of records, stopping at the first malformed one.
func FromRecords(records []map[string]any) ([]Phase, error) {
	phases := make([]Phase, 0, len(records))
	for idx, record := range records {
		p, err := FromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("phases[%d]: %w", idx, err)
		}
		phases = append(phases, p)
	}
	return phases, nil
}

// Names returns the phase names in declaration order.
func Names(phases []Phase) []string {
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, p.Name)
	}
	return names
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	clone := make([]string, len(values))
	copy(clone, values)
	return clone
}
