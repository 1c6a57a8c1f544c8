package deep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reckit/internal/value"
)

func TestCloneIndependence(t *testing.T) {
	orig := sampleConfig()
	cloned := Clone(orig).(value.Object)

	assert.True(t, Equals(cloned, orig))

	cloned["query"].(value.Object)["limit"] = value.Int(1)
	cloned["query"].(value.Object)["fields"].(value.Array)[0] = value.String("Changed")

	assert.Equal(t, value.Int(100), orig["query"].(value.Object)["limit"])
	assert.Equal(t, value.String("Id"), orig["query"].(value.Object)["fields"].(value.Array)[0])
	assert.False(t, Equals(cloned, orig))
}

func TestCloneIsNewReference(t *testing.T) {
	orig := sampleConfig()
	cloned := Clone(orig)
	assert.False(t, value.StrictEqual(orig, cloned))
}

func TestClonePreservesStructKindInsideArrays(t *testing.T) {
	orig := sampleConfig()
	cloned := Clone(orig).(value.Object)

	addon, ok := cloned["addons"].(value.Array)[0].(*value.Struct)
	require.True(t, ok)
	assert.Equal(t, "AddonManifest", addon.Kind)

	origAddon := orig["addons"].(value.Array)[0].(*value.Struct)
	assert.NotSame(t, origAddon, addon)

	addon.Fields["module"] = value.String("custom")
	assert.Equal(t, value.String("core:ExportFiles"), origAddon.Fields["module"])
}

func TestCloneKeepsFuncs(t *testing.T) {
	called := false
	fn := value.Func(func(args ...value.Value) value.Value {
		called = true
		return value.Null{}
	})

	cloned := Clone(value.Object{"cb": fn}).(value.Object)
	cloned["cb"].(value.Func)()
	assert.True(t, called)
}

func TestCloneScalarsAndNil(t *testing.T) {
	assert.Equal(t, value.Int(5), Clone(value.Int(5)))
	assert.Nil(t, Clone(nil))
	assert.Equal(t, value.Array(nil), Clone(value.Array(nil)))
}

func TestJSONCloneIsLossy(t *testing.T) {
	orig := value.Object{
		"name":  value.String("Account"),
		"cb":    value.Func(nil),
		"kind":  value.NewStruct("ScriptObject", value.Object{"n": value.Int(1)}),
		"ratio": value.Float(2),
		"bad":   value.Float(math.NaN()),
	}

	got, err := JSONClone(orig)
	require.NoError(t, err)

	want := value.Object{
		"name":  value.String("Account"),
		"kind":  value.Object{"n": value.Int(1)},
		"ratio": value.Int(2),
		"bad":   value.Null{},
	}
	assert.Equal(t, want, got)
}

func TestJSONCloneIndependence(t *testing.T) {
	orig := sampleConfig()
	got, err := JSONClone(orig)
	require.NoError(t, err)

	got.(value.Object)["query"].(value.Object)["limit"] = value.Int(0)
	assert.Equal(t, value.Int(100), orig["query"].(value.Object)["limit"])
}

func TestShallowCopy(t *testing.T) {
	orig := value.NewStruct("ScriptObject", value.Object{
		"name":  value.String("Account"),
		"query": value.Object{"limit": value.Int(1)},
	})

	cp := ShallowCopy(orig).(*value.Struct)
	assert.Equal(t, "ScriptObject", cp.Kind)
	assert.NotSame(t, orig, cp)

	cp.Fields["name"] = value.String("Contact")
	assert.Equal(t, value.String("Account"), orig.Fields["name"], "top level is copied")

	cp.Fields["query"].(value.Object)["limit"] = value.Int(9)
	assert.Equal(t, value.Int(9), orig.Fields["query"].(value.Object)["limit"], "nested values are shared")
}

func TestShallowCopyArray(t *testing.T) {
	inner := value.Object{"a": value.Int(1)}
	orig := value.Array{inner, value.Int(2)}

	cp := ShallowCopy(orig).(value.Array)
	cp[1] = value.Int(3)
	assert.Equal(t, value.Int(2), orig[1])
	assert.True(t, value.StrictEqual(orig[0], cp[0]))
}
