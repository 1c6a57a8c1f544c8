package records

import (
	"math"
	"reflect"

	"github.com/roach88/reckit/internal/value"
)

// identity is a comparable stand-in for a Value, usable as a map key.
// Scalars are keyed by value (Int and Float share the numeric shape) and
// composites by reference, so two equal-looking Objects stay distinct.
type identity struct {
	shape string
	num   float64
	str   string
	ptr   uintptr
	n     int
}

func identityOf(v value.Value) identity {
	switch val := v.(type) {
	case nil:
		return identity{shape: "undefined"}
	case value.Null:
		return identity{shape: "null"}
	case value.Bool:
		if val {
			return identity{shape: "bool", num: 1}
		}
		return identity{shape: "bool"}
	case value.Int, value.Float:
		f, _ := value.ToNumber(val)
		if math.IsNaN(f) {
			return identity{shape: "nan"}
		}
		if f == 0 {
			f = 0 // fold -0
		}
		return identity{shape: "number", num: f}
	case value.String:
		return identity{shape: "string", str: string(val)}
	case *value.Struct:
		return identity{shape: "struct", ptr: reflect.ValueOf(val).Pointer()}
	default:
		rv := reflect.ValueOf(val)
		id := identity{shape: value.KindOf(val), ptr: rv.Pointer()}
		if rv.Kind() == reflect.Slice {
			id.n = rv.Len()
		}
		return id
	}
}
