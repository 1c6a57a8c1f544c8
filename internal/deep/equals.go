package deep

import "github.com/roach88/reckit/internal/value"

// Options tunes Equals.
type Options struct {
	// ExistsInBothOnly skips the key-count check and visits only the keys
	// of the first argument. Keys present only in the second argument are
	// ignored; keys present only in the first are compared against undefined.
	ExistsInBothOnly bool `json:"exists_in_both_only" yaml:"exists_in_both_only"`

	// EmptyAsUndefined treats any pair of falsy values ("", 0, false, null,
	// undefined) as equal, whatever their kinds.
	EmptyAsUndefined bool `json:"empty_as_undefined" yaml:"empty_as_undefined"`
}

// Equals reports whether a and b are structurally equal with default options.
func Equals(a, b value.Value) bool {
	return EqualsWith(a, b, Options{})
}

// EqualsWith reports whether a and b are structurally equal.
//
// Comparison rules, applied in order:
//  1. EmptyAsUndefined and both sides falsy: equal
//  2. Both sides Func: equal (functions are never compared)
//  3. Both sides composite (Array, Object, Struct): unless ExistsInBothOnly,
//     differing key counts are unequal; then every key of a is compared
//     recursively against the same key of b
//  4. Otherwise: value.LooseEqual
//
// Struct kinds are not compared. Arrays compare by index keys, so an Array
// and an Object with keys "0".."n-1" can be equal.
func EqualsWith(a, b value.Value, opts Options) bool {
	if opts.EmptyAsUndefined && !value.Truthy(a) && !value.Truthy(b) {
		return true
	}

	_, aFunc := a.(value.Func)
	_, bFunc := b.(value.Func)
	if aFunc && bFunc {
		return true
	}

	if value.IsComposite(a) && value.IsComposite(b) {
		keysA := value.Keys(a)
		if !opts.ExistsInBothOnly && len(keysA) != len(value.Keys(b)) {
			return false
		}
		for _, k := range keysA {
			if !EqualsWith(value.Field(a, k), value.Field(b, k), opts) {
				return false
			}
		}
		return true
	}

	return value.LooseEqual(a, b)
}
