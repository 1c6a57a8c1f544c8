package records

import (
	"github.com/roach88/reckit/internal/seq"
	"github.com/roach88/reckit/internal/value"
)

// SortByField returns a copy of rs stably sorted by the named field under
// value.LooseCompare. Records missing the field sort as undefined.
func SortByField(rs []value.Value, field string, ascending bool) []value.Value {
	return seq.SortFunc(rs, byField(field), ascending)
}

// SortByFieldInPlace is SortByField on rs itself.
func SortByFieldInPlace(rs []value.Value, field string, ascending bool) {
	seq.SortFuncInPlace(rs, byField(field), ascending)
}

// SortByFieldPinned sorts like SortByField and then pins records to the
// ends: the first record whose field is strictly equal to each top value
// is moved to the front (in the order top lists them) and the first match
// of each bottom value is moved to the back.
func SortByFieldPinned(rs []value.Value, field string, ascending bool, top, bottom []value.Value) []value.Value {
	sorted := SortByField(rs, field, ascending)
	return seq.Pin(sorted, top, bottom, func(r, pin value.Value) bool {
		return value.StrictEqual(value.Field(r, field), pin)
	})
}

func byField(field string) func(a, b value.Value) int {
	return func(a, b value.Value) int {
		return value.LooseCompare(value.Field(a, field), value.Field(b, field))
	}
}
