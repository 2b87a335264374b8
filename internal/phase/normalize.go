package phase

import (
	"fmt"
	"strings"
)

// NormalizeDependencies converts the accepted encodings of a dependency list
// into a deduplicated slice of phase names. Absent, null, an empty sequence and
// the literal string "None" all mean "no dependencies" and yield nil. Any other
// bare string is rejected rather than guessed at.
func NormalizeDependencies(raw any) ([]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if value == legacyNone {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: expected a list of phase names, got string %q", ErrInvalidInput, value)
	case []string:
		return checkNames(value)
	case []any:
		names := make([]string, 0, len(value))
		for idx, item := range value {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: item %d must be a string, got %T", ErrInvalidInput, idx, item)
			}
			names = append(names, name)
		}
		return checkNames(names)
	default:
		return nil, fmt.Errorf("%w: expected a list of phase names, got %T", ErrInvalidInput, raw)
	}
}

// NormalizeFiles converts a files_modified value into a set of trimmed paths in
// first-seen order. A single string is treated as a comma-separated list.
func NormalizeFiles(raw any) ([]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return trimSet(strings.Split(value, ",")), nil
	case []string:
		return trimSet(value), nil
	case []any:
		files := make([]string, 0, len(value))
		for idx, item := range value {
			path, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: item %d must be a string, got %T", ErrInvalidInput, idx, item)
			}
			files = append(files, path)
		}
		return trimSet(files), nil
	default:
		return nil, fmt.Errorf("%w: expected a list or comma-separated string, got %T", ErrInvalidInput, raw)
	}
}

func checkNames(names []string) ([]string, error) {
	for idx, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: item %d is an empty phase name", ErrInvalidInput, idx)
		}
	}
	return dedupe(names), nil
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func trimSet(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		trimmed = append(trimmed, v)
	}
	return dedupe(trimmed)
}
