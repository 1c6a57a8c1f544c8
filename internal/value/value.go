package value

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the record shapes.
// Only the types in this package implement it.
type Value interface {
	recordValue()
}

// Null is an explicit null.
type Null struct{}

func (Null) recordValue() {}

// Bool is a boolean scalar.
type Bool bool

func (Bool) recordValue() {}

// Int is an integer scalar.
type Int int64

func (Int) recordValue() {}

// Float is a floating point scalar. Int and Float compare numerically.
type Float float64

func (Float) recordValue() {}

// String is a string scalar.
type String string

func (String) recordValue() {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) recordValue() {}

// Object is a string-keyed map of values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) recordValue() {}

// Struct is an Object tagged with a Kind.
//
// Kind plays the role of a class: Clone and CloneShallow preserve it,
// ShallowClone (the JSON round trip) drops it and yields a plain Object.
// Equality ignores Kind and compares fields only.
type Struct struct {
	Kind   string
	Fields Object
}

func (*Struct) recordValue() {}

// NewStruct creates a Struct of the given kind. A nil fields map is
// replaced with an empty Object.
func NewStruct(kind string, fields Object) *Struct {
	if fields == nil {
		fields = Object{}
	}
	return &Struct{Kind: kind, Fields: fields}
}

// Func is a callable record field.
// Two Func values are always considered equal to each other.
type Func func(args ...Value) Value

func (Func) recordValue() {}

// Pair is a key-value pair for Object construction.
type Pair struct {
	Key   string
	Value Value
}

// O is a shorthand for Pair.
// Example: NewObject(O("name", String("Account")), O("order", Int(1)))
func O(key string, v Value) Pair {
	return Pair{Key: key, Value: v}
}

// NewObject creates an Object from pairs. Later pairs overwrite earlier
// ones with the same key.
func NewObject(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
// Go string comparison is by UTF-8 bytes, which orders some
// supplementary-plane characters differently.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// KindOf names the shape of v. A nil Value reports "undefined".
func KindOf(v Value) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	case *Struct:
		if val == nil {
			return "null"
		}
		return val.Kind
	case Func:
		return "func"
	default:
		return "unknown"
	}
}

// IsComposite reports whether v is an Array, Object or non-nil *Struct.
// These are the "non-null objects" the equality and clone engines recurse into.
func IsComposite(v Value) bool {
	switch val := v.(type) {
	case Array, Object:
		return true
	case *Struct:
		return val != nil
	default:
		return false
	}
}

// IsNullish reports whether v is undefined or Null.
func IsNullish(v Value) bool {
	switch val := v.(type) {
	case nil, Null:
		return true
	case *Struct:
		return val == nil
	default:
		return false
	}
}
