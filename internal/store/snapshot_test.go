package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reckit/internal/testutil"
	"github.com/roach88/reckit/internal/value"
)

// createTestStore opens a fresh store in a temp dir with sequential IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDs("snap")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func objects(names ...string) []value.Value {
	out := make([]value.Value, len(names))
	for i, n := range names {
		out[i] = testutil.Obj("name", n)
	}
	return out
}

func TestSave_FirstSnapshot(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	snap, saved, err := s.Save(ctx, "objects", objects("Account", "Contact"))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, "snap-0001", snap.ID)
	assert.Equal(t, int64(1), snap.Seq)
	assert.Equal(t, value.MustFingerprint(value.Array(objects("Account", "Contact"))), snap.Fingerprint)
}

func TestSave_UnchangedIsNoop(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, _, err := s.Save(ctx, "objects", objects("Account"))
	require.NoError(t, err)

	again, saved, err := s.Save(ctx, "objects", objects("Account"))
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, first.ID, again.ID)

	history, err := s.History(ctx, "objects")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSave_LooselyEqualIsNoop(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.Save(ctx, "limits", []value.Value{testutil.Obj("limit", 10)})
	require.NoError(t, err)

	_, saved, err := s.Save(ctx, "limits", []value.Value{testutil.Obj("limit", "10")})
	require.NoError(t, err)
	assert.False(t, saved, "\"10\" == 10 under loose equality")
}

func TestSave_DecomposedStringsAreNoop(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	nfd := objects("Cafe\u0301")
	first, saved, err := s.Save(ctx, "cafes", nfd)
	require.NoError(t, err)
	require.True(t, saved)

	for i := 0; i < 2; i++ {
		again, saved, err := s.Save(ctx, "cafes", objects("Cafe\u0301"))
		require.NoError(t, err)
		assert.False(t, saved)
		assert.Equal(t, first.ID, again.ID)
	}

	// The composed form has the same canonical body.
	_, saved, err = s.Save(ctx, "cafes", objects("Caf\u00e9"))
	require.NoError(t, err)
	assert.False(t, saved)

	history, err := s.History(ctx, "cafes")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSave_ChangeAppends(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.Save(ctx, "objects", objects("Account"))
	require.NoError(t, err)
	second, saved, err := s.Save(ctx, "objects", objects("Account", "Lead"))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, int64(2), second.Seq)

	latest, err := s.Latest(ctx, "objects")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, objects("Account", "Lead"), latest.Records)

	first, err := s.Get(ctx, "objects", 1)
	require.NoError(t, err)
	assert.Equal(t, objects("Account"), first.Records)
}

func TestSave_NamesAreIndependent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.Save(ctx, "b", objects("x"))
	require.NoError(t, err)
	snap, saved, err := s.Save(ctx, "a", objects("x"))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, int64(1), snap.Seq)

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	same, err := s.FindByFingerprint(ctx, snap.Fingerprint)
	require.NoError(t, err)
	require.Len(t, same, 2)
	assert.Equal(t, "a", same[0].Name)
	assert.Equal(t, "b", same[1].Name)
}

func TestSave_RejectsNonFinite(t *testing.T) {
	s := createTestStore(t)
	_, _, err := s.Save(context.Background(), "bad", []value.Value{value.Object{"x": value.Float(posInf())}})
	require.Error(t, err)
}

func TestLatest_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Latest(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Get(context.Background(), "missing", 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHistory_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)
	history, err := s.History(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestHistory_Order(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, set := range [][]string{{"a"}, {"a", "b"}, {"b"}} {
		_, _, err := s.Save(ctx, "objects", objects(set...))
		require.NoError(t, err)
	}

	history, err := s.History(ctx, "objects")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, snap := range history {
		assert.Equal(t, int64(i+1), snap.Seq)
	}
	assert.Equal(t, objects("b"), history[2].Records)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func posInf() float64 {
	return math.Inf(1)
}
