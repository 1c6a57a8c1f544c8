package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	_, _, err := execute(t, "test", "/nonexistent/pipelines")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "pipelines directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No pipelines found")
}

func TestTestCommandEmptyDirJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "test", t.TempDir())
	require.NoError(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Pipelines)
}

func TestTestCommandPasses(t *testing.T) {
	out, _, err := execute(t, "test", "testdata/pipelines")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ leads")
	assert.Contains(t, out, "✓ teams")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
	assert.Contains(t, out, "✓ All pipelines passed")
}

func TestTestCommandFilter(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "test", "testdata/pipelines", "--filter", "te*")
	require.NoError(t, err)

	var result TestResult
	decodeResponse(t, out, &result)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "teams", result.Pipelines[0].Name)
	assert.True(t, result.Pipelines[0].Pass)
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, _, err := execute(t, "test", "testdata/pipelines", "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandFailure(t *testing.T) {
	out, _, err := execute(t, "test", "testdata/failing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ too_many")
	assert.Contains(t, out, "  expected 3 rows, got 2")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommandFailureJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "test", "testdata/failing")
	require.Error(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, result.Failed)
}

// writeTeamsPipeline writes a copy of the teams pipeline into dir with an
// absolute source path.
func writeTeamsPipeline(t *testing.T, dir string) string {
	t.Helper()
	people, err := filepath.Abs("testdata/people.json")
	require.NoError(t, err)

	path := filepath.Join(dir, "teams.pipeline.yaml")
	body := "name: teams\nsources:\n  people: " + people + "\ninput: people\nsteps:\n  - group: {by: team, key: team, items: members}\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTestCommandUpdateWritesGolden(t *testing.T) {
	dir := t.TempDir()
	writeTeamsPipeline(t, dir)

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ teams (golden updated)")

	got, err := os.ReadFile(filepath.Join(dir, "golden", "teams.golden"))
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/pipelines/golden/teams.golden")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeTeamsPipeline(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "teams.golden"), []byte("[]"), 0o644))

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "output does not match golden file")
}

func TestTestCommandIgnoresDataFiles(t *testing.T) {
	files, err := findPipelineFiles("testdata", "")
	require.NoError(t, err)
	for _, f := range files {
		_, ok := pipelineName(f)
		assert.True(t, ok, "data file %s picked up", f)
	}
	assert.Len(t, files, 3)
}

func TestPipelineName(t *testing.T) {
	name, ok := pipelineName("dir/objects_view.pipeline.yml")
	assert.True(t, ok)
	assert.Equal(t, "objects_view", name)

	_, ok = pipelineName("dir/teams.yaml")
	assert.False(t, ok)

	assert.Equal(t, filepath.Join("dir", "golden", "teams.golden"), goldenFilePath("dir/teams.pipeline.yaml"))
}
