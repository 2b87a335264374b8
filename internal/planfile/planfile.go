// Package planfile decodes phase plans from disk. Plans are YAML (or JSON)
// documents, or Markdown documents that carry the plan in YAML frontmatter.
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/phaseplan/internal/phase"
)

// ErrNoPhases indicates an empty plan payload.
var ErrNoPhases = errors.New("planfile: plan payload is empty")

// DefaultPatterns are the file globs Discover uses when none are configured.
var DefaultPatterns = []string{"*.md", "*.yaml", "*.yml"}

// Format selects how a payload is decoded.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Plan is a decoded batch of phases.
type Plan struct {
	Name   string        `json:"name,omitempty" yaml:"name,omitempty"`
	Phases []phase.Phase `json:"phases" yaml:"phases"`
	// Path is the file the plan was loaded from, if any.
	Path string `json:"path,omitempty" yaml:"-"`
	// Body holds the Markdown text that follows the frontmatter.
	Body string `json:"-" yaml:"-"`
}

// FormatForPath picks a decoder from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatYAML
	}
}

// Parse decodes a plan payload.
func Parse(data []byte, format Format) (Plan, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Plan{}, ErrNoPhases
	}
	switch format {
	case FormatMarkdown:
		header, body, err := splitFrontMatter(data)
		if err != nil {
			return Plan{}, err
		}
		plan, err := decodeYAML(header)
		if err != nil {
			return Plan{}, err
		}
		plan.Body = string(body)
		return plan, nil
	case FormatYAML, "":
		return decodeYAML(data)
	default:
		return Plan{}, fmt.Errorf("planfile: unsupported format %q", format)
	}
}

// LoadReader reads a plan payload from r.
func LoadReader(r io.Reader, format Format) (Plan, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Plan{}, fmt.Errorf("planfile: read plan: %w", err)
	}
	return Parse(content, format)
}

// LoadFile loads a plan from disk, choosing the decoder from the extension.
func LoadFile(path string) (Plan, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("planfile: read %s: %w", path, err)
	}
	plan, err := Parse(content, FormatForPath(path))
	if err != nil {
		return Plan{}, fmt.Errorf("planfile: %s: %w", path, err)
	}
	plan.Path = path
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return plan, nil
}

// Discover lists plan files directly inside dir that match any of the
// patterns, sorted by path.
func Discover(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	seen := map[string]struct{}{}
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("planfile: pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, statErr := os.Stat(match)
			if statErr != nil || info.IsDir() {
				continue
			}
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// decodeYAML accepts either a mapping with a phases key or a bare sequence of
// phases.
func decodeYAML(data []byte) (Plan, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Plan{}, fmt.Errorf("planfile: decode plan: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Plan{}, nil
	}
	doc := root.Content[0]
	var plan Plan
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&plan.Phases); err != nil {
			return Plan{}, fmt.Errorf("planfile: decode phases: %w", err)
		}
	case yaml.MappingNode:
		if err := doc.Decode(&plan); err != nil {
			return Plan{}, fmt.Errorf("planfile: decode plan: %w", err)
		}
	case yaml.ScalarNode:
		if doc.Tag == "!!null" {
			return Plan{}, nil
		}
		return Plan{}, fmt.Errorf("planfile: %w: plan must be a mapping or a list of phases", phase.ErrInvalidInput)
	default:
		return Plan{}, fmt.Errorf("planfile: %w: plan must be a mapping or a list of phases", phase.ErrInvalidInput)
	}
	return plan, nil
}
