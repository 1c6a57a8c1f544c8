package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	var _ Value = Null{}
	var _ Value = Bool(true)
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = String("s")
	var _ Value = Array{Int(1)}
	var _ Value = Object{"k": String("v")}
	var _ Value = NewStruct("Account", nil)
	var _ Value = Func(func(args ...Value) Value { return Null{} })
}

func TestObjectSortedKeys(t *testing.T) {
	obj := Object{
		"zebra":  String("z"),
		"apple":  String("a"),
		"banana": String("b"),
	}
	assert.Equal(t, []string{"apple", "banana", "zebra"}, obj.SortedKeys())
}

func TestObjectSortedKeysUTF16Order(t *testing.T) {
	// U+10000 encodes as the surrogate pair D800 DC00, which sorts before
	// U+FFFD in UTF-16 but after it in UTF-8.
	obj := Object{"\U00010000": Int(1), "�": Int(2)}
	assert.Equal(t, []string{"\U00010000", "�"}, obj.SortedKeys())
}

func TestNewObjectLaterPairWins(t *testing.T) {
	obj := NewObject(O("a", Int(1)), O("a", Int(2)))
	assert.Equal(t, Object{"a": Int(2)}, obj)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{nil, "undefined"},
		{Null{}, "null"},
		{Bool(false), "bool"},
		{Int(1), "int"},
		{Float(1), "float"},
		{String(""), "string"},
		{Array{}, "array"},
		{Object{}, "object"},
		{NewStruct("Account", nil), "Account"},
		{Func(nil), "func"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.v))
		})
	}
}

func TestGet(t *testing.T) {
	rec := Object{
		"name":   String("Account"),
		"fields": Array{String("Id"), String("Name")},
		"meta":   NewStruct("Describe", Object{"label": String("Accounts")}),
	}

	v, ok := Get(rec, "name")
	require.True(t, ok)
	assert.Equal(t, String("Account"), v)

	_, ok = Get(rec, "missing")
	assert.False(t, ok)

	fields := Field(rec, "fields")
	assert.Equal(t, String("Name"), Field(fields, "1"))
	assert.Nil(t, Field(fields, "2"))
	assert.Nil(t, Field(fields, "-1"))
	assert.Nil(t, Field(fields, "x"))

	assert.Equal(t, String("Accounts"), Field(Field(rec, "meta"), "label"))

	// Scalars never have fields.
	assert.Nil(t, Field(String("abc"), "0"))
	assert.False(t, Has(Int(1), "x"))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Keys(Object{"b": Int(1), "a": Int(2)}))
	assert.Equal(t, []string{"0", "1", "2"}, Keys(Array{Null{}, Null{}, Null{}}))
	assert.Equal(t, []string{"x"}, Keys(NewStruct("K", Object{"x": Int(1)})))
	assert.Nil(t, Keys(String("abc")))
}

func TestAsArray(t *testing.T) {
	arr, ok := AsArray(Array{Int(1)})
	require.True(t, ok)
	assert.Len(t, arr, 1)

	_, ok = AsArray(Object{"0": Int(1)})
	assert.False(t, ok)
	_, ok = AsArray(nil)
	assert.False(t, ok)
}

func TestIsComposite(t *testing.T) {
	assert.True(t, IsComposite(Array{}))
	assert.True(t, IsComposite(Object{}))
	assert.True(t, IsComposite(NewStruct("K", nil)))
	assert.False(t, IsComposite((*Struct)(nil)))
	assert.False(t, IsComposite(Null{}))
	assert.False(t, IsComposite(Func(nil)))
	assert.False(t, IsComposite(nil))
}
