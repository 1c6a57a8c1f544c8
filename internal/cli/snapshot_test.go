package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reckit/internal/testutil"
)

// snapshotWithIDs runs the snapshot command with deterministic IDs.
func snapshotWithIDs(t *testing.T, db string, ids *testutil.SequentialIDs, format, name, source string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})

	opts := &SnapshotOptions{
		RootOptions: &RootOptions{Format: format},
		Database:    db,
		IDs:         ids,
	}
	err := runSnapshot(opts, name, source, cmd)
	return buf.String(), err
}

func TestSnapshotSavesAndSkipsUnchanged(t *testing.T) {
	db := filepath.Join(t.TempDir(), "reckit.db")
	ids := testutil.NewSequentialIDs("snap")

	out, err := snapshotWithIDs(t, db, ids, "json", "people", "testdata/people.json")
	require.NoError(t, err)

	var first SnapshotOutput
	decodeResponse(t, out, &first)
	assert.True(t, first.Saved)
	assert.Equal(t, SnapshotInfo{
		ID:          "snap-0001",
		Name:        "people",
		Seq:         1,
		Fingerprint: first.Snapshot.Fingerprint,
		Records:     3,
	}, first.Snapshot)

	// Same content, different file: ids are loosely equal.
	dir := t.TempDir()
	same := filepath.Join(dir, "people.json")
	require.NoError(t, os.WriteFile(same, []byte(`[
		{"id": "1", "name": "Ada", "team": "core"},
		{"id": 2, "name": "Lin", "team": "web"},
		{"id": 3, "name": "Bo", "team": "core"}
	]`), 0o644))

	out, err = snapshotWithIDs(t, db, ids, "text", "people", same)
	require.NoError(t, err)
	assert.Contains(t, out, "= unchanged people@1")

	out, err = snapshotWithIDs(t, db, ids, "text", "people", "testdata/people_renamed.json")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ saved people@2 (2 record(s), ")
}

func TestSnapshotMissingSource(t *testing.T) {
	db := filepath.Join(t.TempDir(), "reckit.db")
	_, err := snapshotWithIDs(t, db, testutil.NewSequentialIDs("snap"), "text", "people", "testdata/missing.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSnapshotRequiresDB(t *testing.T) {
	_, _, err := execute(t, "snapshot", "people", "testdata/people.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}

func TestHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "reckit.db")
	ids := testutil.NewSequentialIDs("snap")

	_, err := snapshotWithIDs(t, db, ids, "text", "people", "testdata/people.json")
	require.NoError(t, err)
	_, err = snapshotWithIDs(t, db, ids, "text", "people", "testdata/people_renamed.json")
	require.NoError(t, err)
	_, err = snapshotWithIDs(t, db, ids, "text", "teams", "testdata/teams.yaml#teams")
	require.NoError(t, err)

	t.Run("names", func(t *testing.T) {
		out, _, err := execute(t, "history", "--db", db)
		require.NoError(t, err)
		assert.Equal(t, "people\nteams\n", out)
	})

	t.Run("by name", func(t *testing.T) {
		out, _, err := execute(t, "--format", "json", "history", "--db", db, "people")
		require.NoError(t, err)

		var infos []SnapshotInfo
		decodeResponse(t, out, &infos)
		require.Len(t, infos, 2)
		assert.Equal(t, "snap-0001", infos[0].ID)
		assert.Equal(t, int64(1), infos[0].Seq)
		assert.Equal(t, 3, infos[0].Records)
		assert.Equal(t, "snap-0002", infos[1].ID)
		assert.Equal(t, 2, infos[1].Records)
	})

	t.Run("show", func(t *testing.T) {
		out, _, err := execute(t, "history", "--db", db, "people", "--show", "2")
		require.NoError(t, err)
		assert.Contains(t, out, `"team": "mobile"`)
	})

	t.Run("show unknown seq", func(t *testing.T) {
		_, _, err := execute(t, "history", "--db", db, "people", "--show", "9")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "no snapshot people@9")
	})

	t.Run("show without name", func(t *testing.T) {
		_, _, err := execute(t, "history", "--db", db, "--show", "1")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("by fingerprint", func(t *testing.T) {
		out, _, err := execute(t, "--format", "json", "history", "--db", db, "teams")
		require.NoError(t, err)
		var infos []SnapshotInfo
		decodeResponse(t, out, &infos)
		require.Len(t, infos, 1)

		out, _, err = execute(t, "--format", "json", "history", "--db", db, "--fingerprint", infos[0].Fingerprint)
		require.NoError(t, err)
		var found []SnapshotInfo
		decodeResponse(t, out, &found)
		require.Len(t, found, 1)
		assert.Equal(t, "teams", found[0].Name)
	})

	t.Run("unknown name", func(t *testing.T) {
		out, _, err := execute(t, "history", "--db", db, "nobody")
		require.NoError(t, err)
		assert.Contains(t, out, "No snapshots found.")
	})
}

func TestHistoryMissingDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "typo.db")

	out, _, err := execute(t, "history", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeStore)
	assert.NotContains(t, out, "No snapshots found.")

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "history must not create the database")
}
