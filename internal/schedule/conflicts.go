package schedule

import (
	"strings"

	"github.com/kingrea/phaseplan/internal/phase"
)

// FileConflict records a file that more than one phase declares it will
// modify.
type FileConflict struct {
	File   string   `json:"file"`
	Phases []string `json:"phases"`
	Count  int      `json:"count"`
}

// DetectFileConflicts returns one record per file declared by two or more
// phases. Records follow the order in which files are first seen while
// walking the phases in declaration order. This is a static overlap check; it
// says nothing about whether the phases actually run at the same time.
func DetectFileConflicts(phases []phase.Phase) []FileConflict {
	owners := map[string][]string{}
	var files []string
	for _, p := range phases {
		for _, file := range p.FilesModified {
			file = strings.TrimSpace(file)
			if file == "" {
				continue
			}
			current, seen := owners[file]
			if !seen {
				files = append(files, file)
			}
			if containsName(current, p.Name) {
				continue
			}
			owners[file] = append(current, p.Name)
		}
	}
	var conflicts []FileConflict
	for _, file := range files {
		names := owners[file]
		if len(names) < 2 {
			continue
		}
		conflicts = append(conflicts, FileConflict{File: file, Phases: names, Count: len(names)})
	}
	return conflicts
}

func containsName(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}
