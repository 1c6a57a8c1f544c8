package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalKeyOrder(t *testing.T) {
	data, err := MarshalCanonical(Object{"b": Int(1), "a": Int(2), "A": Int(3)})
	require.NoError(t, err)
	assert.Equal(t, `{"A":3,"a":2,"b":1}`, string(data))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(String("a<b>&c\u2028"))
	require.NoError(t, err)
	assert.Equal(t, "\"a<b>&c\u2028\"", string(data))
}

func TestMarshalCanonicalControlCharacters(t *testing.T) {
	data, err := MarshalCanonical(String("tab\there\x01\"\\"))
	require.NoError(t, err)
	assert.Equal(t, `"tab\there\u0001\"\\"`, string(data))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// "e" + combining acute accent normalises to a single U+00E9.
	decomposed, err := MarshalCanonical(String("e\u0301"))
	require.NoError(t, err)
	composed, err := MarshalCanonical(String("\u00e9"))
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalCanonicalRejectsNonFinite(t *testing.T) {
	_, err := MarshalCanonical(Object{"x": Float(math.Inf(1))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `value for key "x"`)
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Object{"name": String("Account"), "fields": Array{String("Id")}}
	b := Object{"fields": Array{String("Id")}, "name": String("Account")}

	fa := MustFingerprint(a)
	assert.Len(t, fa, 64)
	assert.Equal(t, fa, MustFingerprint(b))
	assert.NotEqual(t, fa, MustFingerprint(Object{"name": String("Contact")}))
}

func TestFingerprintIgnoresFuncsAndKinds(t *testing.T) {
	plain := Object{"a": Int(1)}
	withFunc := Object{"a": Int(1), "onChange": Func(nil)}
	kinded := NewStruct("Config", Object{"a": Int(1)})

	assert.Equal(t, MustFingerprint(plain), MustFingerprint(withFunc))
	assert.Equal(t, MustFingerprint(plain), MustFingerprint(kinded))
}

func TestMustFingerprintPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustFingerprint(Float(math.NaN()))
	})
}
