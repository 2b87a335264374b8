package planfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/phaseplan/internal/phase"
)

const yamlPlan = `name: auth-rework
phases:
  - name: schema
    dependencies: None
    files_modified: db/schema.sql, db/seed.sql
  - name: api
    dependencies: [schema]
    files_modified: [api/routes.go]
  - name: docs
`

func TestParseYAMLPlan(t *testing.T) {
	plan, err := Parse([]byte(yamlPlan), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "auth-rework", plan.Name)
	require.Len(t, plan.Phases, 3)
	assert.Empty(t, plan.Phases[0].Dependencies)
	assert.Equal(t, []string{"db/schema.sql", "db/seed.sql"}, plan.Phases[0].FilesModified)
	assert.Equal(t, []string{"schema"}, plan.Phases[1].Dependencies)
	assert.Empty(t, plan.Phases[2].FilesModified)
}

func TestParseBareSequenceAndJSON(t *testing.T) {
	plan, err := Parse([]byte("- name: a\n- name: b\n  dependencies: [a]\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, phase.Names(plan.Phases))

	plan, err = Parse([]byte(`{"phases": [{"name": "a", "dependencies": null}, {"name": "b", "dependencies": ["a"]}]}`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, phase.Names(plan.Phases))
	assert.Empty(t, plan.Phases[0].Dependencies)
}

func TestParseMarkdownFrontMatter(t *testing.T) {
	doc := "---\r\nname: prp\r\nphases:\r\n  - name: one\r\n  - name: two\r\n    dependencies: [one]\r\n---\r\n# Plan\r\nBody text\r\n"
	plan, err := Parse([]byte(doc), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "prp", plan.Name)
	assert.Equal(t, []string{"one", "two"}, phase.Names(plan.Phases))
	assert.True(t, strings.HasPrefix(plan.Body, "# Plan"))
}

func TestParseMarkdownErrors(t *testing.T) {
	_, err := Parse([]byte("# no header\n"), FormatMarkdown)
	assert.ErrorIs(t, err, ErrMissingFrontMatter)
	_, err = Parse([]byte("---\nphases: []\nno closing fence\n"), FormatMarkdown)
	assert.ErrorIs(t, err, ErrMalformedFrontMatter)
}

func TestParseRejectsMalformedPhases(t *testing.T) {
	_, err := Parse([]byte("phases:\n  - name: a\n    dependencies: b\n"), FormatYAML)
	require.Error(t, err)
	assert.ErrorIs(t, err, phase.ErrInvalidInput)

	_, err = Parse([]byte("just a string"), FormatYAML)
	assert.ErrorIs(t, err, phase.ErrInvalidInput)

	_, err = Parse([]byte("   \n"), FormatYAML)
	assert.ErrorIs(t, err, ErrNoPhases)

	_, err = Parse([]byte("phases: []"), Format("toml"))
	assert.Error(t, err)
}

func TestLoadFileAndDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b-plan.yaml"), yamlPlan)
	writeFile(t, filepath.Join(dir, "a-prp.md"), "---\nphases:\n  - name: solo\n---\nbody\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.md"), 0o755))

	paths, err := Discover(dir, nil)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a-prp.md"), filepath.Join(dir, "b-plan.yaml")}, paths)

	plan, err := LoadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "a-prp", plan.Name)
	assert.Equal(t, paths[0], plan.Path)
	assert.Equal(t, []string{"solo"}, phase.Names(plan.Phases))

	plan, err = LoadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "auth-rework", plan.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadReader(t *testing.T) {
	plan, err := LoadReader(strings.NewReader(yamlPlan), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, plan.Phases, 3)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	writeFile(t, path, "phases:\n  - name: A\n  - name: B\n    dependencies: [A]\n  - name: C\n    dependencies: [A]\n  - name: D\n    dependencies: [B, C]\n")
	plan, analysis, err := AnalyzeFile(path)
	require.NoError(t, err)
	assert.Len(t, plan.Phases, 4)
	assert.True(t, analysis.Success)
	assert.Equal(t, 3, analysis.TotalStages)
	assert.Equal(t, 2, analysis.MaxParallelism)

	cyclic := filepath.Join(dir, "cyclic.yaml")
	writeFile(t, cyclic, "- name: A\n  dependencies: [B]\n- name: B\n  dependencies: [A]\n")
	_, analysis, err = AnalyzeFile(cyclic)
	require.NoError(t, err)
	assert.False(t, analysis.Success)
	assert.Contains(t, analysis.Errors[0], "circular")
}
