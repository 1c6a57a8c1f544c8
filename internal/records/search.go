package records

import (
	"github.com/roach88/reckit/internal/seq"
	"github.com/roach88/reckit/internal/value"
	"golang.org/x/text/cases"
)

// ExcludeBy drops every record whose sourceKey field, in string form,
// equals the targetKey field of any record in others.
func ExcludeBy(rs []value.Value, sourceKey, targetKey string, others []value.Value) []value.Value {
	seen := make(map[string]struct{}, len(others))
	for _, o := range others {
		seen[value.ToString(value.Field(o, targetKey))] = struct{}{}
	}
	return seq.Remove(rs, func(r value.Value) bool {
		_, ok := seen[value.ToString(value.Field(r, sourceKey))]
		return ok
	})
}

// MatchesProps reports whether every field in props is loosely equal to
// the same field of r.
func MatchesProps(r value.Value, props value.Object) bool {
	for k, want := range props {
		if !value.LooseEqual(value.Field(r, k), want) {
			return false
		}
	}
	return true
}

// RemoveByProps returns a copy of rs without the records matching props.
// An empty props matches every record.
func RemoveByProps(rs []value.Value, props value.Object) []value.Value {
	return seq.Remove(rs, func(r value.Value) bool { return MatchesProps(r, props) })
}

// RemoveByPropsInPlace is RemoveByProps on rs itself. It returns the
// shortened slice.
func RemoveByPropsInPlace(rs []value.Value, props value.Object) []value.Value {
	return seq.RemoveInPlace(rs, func(r value.Value) bool { return MatchesProps(r, props) })
}

// IncludesIgnoreCase reports whether rs holds s under Unicode case
// folding. With an empty prop the elements themselves must be Strings;
// otherwise each element's prop field is compared in string form.
func IncludesIgnoreCase(rs []value.Value, s string, prop string) bool {
	fold := cases.Fold()
	want := fold.String(s)
	for _, r := range rs {
		var got string
		if prop == "" {
			str, ok := r.(value.String)
			if !ok {
				continue
			}
			got = string(str)
		} else {
			f, ok := value.Get(r, prop)
			if !ok {
				continue
			}
			got = value.ToString(f)
		}
		if fold.String(got) == want {
			return true
		}
	}
	return false
}
