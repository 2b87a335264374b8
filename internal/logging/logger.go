package logging

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/phaseplan/internal/config"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger appends timestamped lines to .phaseplan/logs/phaseplan.log so users
// can see what earlier analyses reported. Every line carries the run ID of the
// Logger that wrote it, so lines from one invocation can be grepped together.
type Logger struct {
	path  string
	runID string
	mu    sync.Mutex
	file  *os.File
}

// New creates (or reuses) the log file for the current project directory.
func New(projectDir string) (*Logger, error) {
	return Open(filepath.Join(projectDir, config.ProjectDirName, "logs", "phaseplan.log"))
}

// Open appends to the log file at path, creating parent directories.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{path: path, runID: uuid.NewString()[:8], file: f}, nil
}

// RunID returns the short identifier stamped on this logger's lines.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Path returns the file backing this logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.file.Close()
	l.file = nil
	return err
}

// Printf writes a single informational line.
func (l *Logger) Printf(format string, args ...any) {
	l.append(LevelInfo, fmt.Sprintf(format, args...))
}

// Infof appends an informational entry.
func (l *Logger) Infof(format string, args ...any) {
	l.append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf appends a warning entry.
func (l *Logger) Warnf(format string, args ...any) {
	l.append(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf appends an error entry.
func (l *Logger) Errorf(format string, args ...any) {
	l.append(LevelError, fmt.Sprintf(format, args...))
}

func (l *Logger) append(level Level, message string) {
	if l == nil || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	message = strings.TrimRight(strings.TrimSpace(message), "\n")
	fmt.Fprintf(l.file, "%s run=%s %-5s %s\n", time.Now().UTC().Format(time.RFC3339), l.runID, string(level), message)
}

// Tail returns up to maxLines of the most recent entries plus the total
// number of entries in the file.
func (l *Logger) Tail(maxLines int) ([]string, int) {
	if l == nil || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	total := len(lines)
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, total
}
