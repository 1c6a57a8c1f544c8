package value

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Truthy reports whether v is truthy under the loose convention:
// undefined, Null, false, 0, NaN and "" are falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, Null:
		return false
	case Bool:
		return bool(val)
	case Int:
		return val != 0
	case Float:
		f := float64(val)
		return f != 0 && !math.IsNaN(f)
	case String:
		return val != ""
	case *Struct:
		return val != nil
	case Func:
		return val != nil
	default:
		return true
	}
}

// LooseEqual compares two values with type coercion.
//
// Rules:
//   - undefined and Null equal each other and nothing else
//   - numbers compare numerically (Int and Float mix freely; NaN never equals)
//   - a number and a string compare after converting the string to a number
//   - a Bool is converted to 1 or 0 before comparing
//   - a composite and a scalar compare after converting the composite to its
//     string form
//   - two composites (or two Funcs) are equal only if they are the same reference
func LooseEqual(a, b Value) bool {
	an, bn := IsNullish(a), IsNullish(b)
	if an || bn {
		return an && bn
	}

	// Bool converts to number first, whatever the other side is.
	if ab, ok := a.(Bool); ok {
		return LooseEqual(boolNumber(ab), b)
	}
	if bb, ok := b.(Bool); ok {
		return LooseEqual(a, boolNumber(bb))
	}

	ac, bc := IsComposite(a) || isFunc(a), IsComposite(b) || isFunc(b)
	switch {
	case ac && bc:
		return sameReference(a, b)
	case ac:
		return LooseEqual(String(ToString(a)), b)
	case bc:
		return LooseEqual(a, String(ToString(b)))
	}

	as, aIsStr := a.(String)
	bs, bIsStr := b.(String)
	if aIsStr && bIsStr {
		return as == bs
	}

	af, aok := ToNumber(a)
	bf, bok := ToNumber(b)
	if !aok || !bok {
		return false
	}
	return af == bf
}

// LooseLess reports a < b under loose comparison: if both sides are
// strings they compare by UTF-16 code units, otherwise both are converted
// to numbers. Any comparison involving NaN is false.
func LooseLess(a, b Value) bool {
	pa, pb := toPrimitive(a), toPrimitive(b)
	as, aIsStr := pa.(String)
	bs, bIsStr := pb.(String)
	if aIsStr && bIsStr {
		return compareKeysRFC8785(string(as), string(bs)) < 0
	}

	af, aok := ToNumber(pa)
	bf, bok := ToNumber(pb)
	if !aok || !bok || math.IsNaN(af) || math.IsNaN(bf) {
		return false
	}
	return af < bf
}

// LooseCompare returns -1 if a < b, 1 if a > b and 0 otherwise.
// Values that are neither less nor greater (equal, or incomparable such
// as NaN) compare as 0, so a stable sort keeps their input order.
func LooseCompare(a, b Value) int {
	if LooseLess(a, b) {
		return -1
	}
	if LooseLess(b, a) {
		return 1
	}
	return 0
}

// ToNumber converts v to a float64. The second result is false for values
// that have no numeric reading (undefined, Func); they behave as NaN.
func ToNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return math.NaN(), false
	case Null:
		return 0, true
	case Bool:
		if val {
			return 1, true
		}
		return 0, true
	case Int:
		return float64(val), true
	case Float:
		return float64(val), true
	case String:
		return stringToNumber(string(val)), true
	case Func:
		return math.NaN(), false
	default:
		if IsNullish(v) {
			return 0, true
		}
		return stringToNumber(ToString(v)), true
	}
}

// ToString renders v the way string coercion does: arrays join their
// elements with commas, objects render as "[object Object]".
func ToString(v Value) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return FormatNumber(float64(val))
	case String:
		return string(val)
	case Array:
		parts := make([]string, len(val))
		for i, elem := range val {
			if IsNullish(elem) {
				continue
			}
			parts[i] = ToString(elem)
		}
		return strings.Join(parts, ",")
	case Func:
		return "function"
	case *Struct:
		if val == nil {
			return "null"
		}
		return "[object Object]"
	default:
		return "[object Object]"
	}
}

// FormatNumber formats f the way JavaScript's Number#toString does for
// the common range: integral values have no fraction, magnitudes in
// [1e-6, 1e21) use plain notation, others use exponent notation.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go renders "1e-07"; JavaScript renders "1e-7".
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[0]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + string(sign) + exp
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	// ParseFloat accepts "inf", "nan" and underscores; numeric strings don't.
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(s, "_") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func boolNumber(b Bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

func isFunc(v Value) bool {
	_, ok := v.(Func)
	return ok
}

// toPrimitive reduces composites to their string form and leaves scalars alone.
func toPrimitive(v Value) Value {
	if IsComposite(v) || isFunc(v) {
		return String(ToString(v))
	}
	return v
}

// sameReference reports whether two composite values share identity.
// Maps and funcs compare by pointer; slices by backing array and length.
func sameReference(a, b Value) bool {
	switch av := a.(type) {
	case Object:
		bv, ok := b.(Object)
		return ok && reflect.ValueOf(av).UnsafePointer() == reflect.ValueOf(bv).UnsafePointer()
	case *Struct:
		bv, ok := b.(*Struct)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		if len(av) == 0 {
			return reflect.ValueOf(av).UnsafePointer() == reflect.ValueOf(bv).UnsafePointer()
		}
		return &av[0] == &bv[0]
	case Func:
		bv, ok := b.(Func)
		return ok && reflect.ValueOf(av).UnsafePointer() == reflect.ValueOf(bv).UnsafePointer()
	default:
		return false
	}
}

// StrictEqual compares without coercion: the two values must be the same
// scalar shape with the same value (Int and Float count as one numeric
// shape), both nullish of the same kind, or the same composite reference.
func StrictEqual(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Int, Float:
		if !isNumber(b) {
			return false
		}
		af, _ := ToNumber(a)
		bf, _ := ToNumber(b)
		return af == bf
	default:
		return sameReference(a, b)
	}
}

func isNumber(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	default:
		return false
	}
}
