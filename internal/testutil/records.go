// Package testutil provides builders and deterministic generators for tests.
package testutil

import "github.com/roach88/reckit/internal/value"

// Obj builds an Object from alternating key/value arguments. Values go
// through value.MustFromAny, so Go literals can be used directly:
//
//	Obj("name", "Account", "limit", 10)
//
// Panics on an odd argument count, a non-string key or an unsupported
// value type.
func Obj(kv ...any) value.Object {
	if len(kv)%2 != 0 {
		panic("testutil.Obj: odd number of arguments")
	}
	obj := make(value.Object, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("testutil.Obj: key must be a string")
		}
		obj[key] = value.MustFromAny(kv[i+1])
	}
	return obj
}

// Arr builds an Array from Go literals.
func Arr(elems ...any) value.Array {
	arr := make(value.Array, len(elems))
	for i, elem := range elems {
		arr[i] = value.MustFromAny(elem)
	}
	return arr
}

// Seq builds a record sequence from records.
func Seq(records ...value.Value) []value.Value {
	return records
}
