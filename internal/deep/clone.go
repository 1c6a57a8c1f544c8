package deep

import (
	"fmt"

	"github.com/roach88/reckit/internal/value"
)

// Clone returns a deep copy of v.
//
// Every nested Object, Array and Struct is copied; Struct kinds are kept
// at every depth, including Structs nested inside Arrays. Arrays are
// cloned slot by slot rather than sliced, so no element is shared with
// the original. Scalars and Funcs are returned as they are.
func Clone(v value.Value) value.Value {
	switch val := v.(type) {
	case value.Object:
		return cloneObject(val)
	case *value.Struct:
		if val == nil {
			return val
		}
		return &value.Struct{Kind: val.Kind, Fields: cloneObject(val.Fields)}
	case value.Array:
		if val == nil {
			return val
		}
		out := make(value.Array, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	default:
		return v
	}
}

func cloneObject(obj value.Object) value.Object {
	if obj == nil {
		return nil
	}
	out := make(value.Object, len(obj))
	for k, elem := range obj {
		out[k] = Clone(elem)
	}
	return out
}

// JSONClone copies v through a JSON round trip.
//
// The copy is lossy: Funcs and undefined fields are
// dropped, Struct kinds are lost (Structs become plain Objects), NaN and
// Infinity become Null, and integral floats decode as Int. Use it only for
// plain-data snapshots; use Clone when kinds matter.
func JSONClone(v value.Value) (value.Value, error) {
	data, err := value.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json clone: %w", err)
	}
	out, err := value.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("json clone: %w", err)
	}
	return out, nil
}

// ShallowCopy returns a one-level copy of v. The container is new and
// keeps its Struct kind; the nested values are shared with the original.
func ShallowCopy(v value.Value) value.Value {
	switch val := v.(type) {
	case value.Object:
		return copyObject(val)
	case *value.Struct:
		if val == nil {
			return val
		}
		return &value.Struct{Kind: val.Kind, Fields: copyObject(val.Fields)}
	case value.Array:
		if val == nil {
			return val
		}
		out := make(value.Array, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

func copyObject(obj value.Object) value.Object {
	if obj == nil {
		return nil
	}
	out := make(value.Object, len(obj))
	for k, elem := range obj {
		out[k] = elem
	}
	return out
}
