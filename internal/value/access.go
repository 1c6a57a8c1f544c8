package value

import "strconv"

// Get returns the field key of v.
//
// Objects and Structs are looked up by key; Arrays accept a decimal index.
// Any other shape, or an absent key, yields (nil, false). Get never panics
// on shape mismatch.
func Get(v Value, key string) (Value, bool) {
	switch val := v.(type) {
	case Object:
		f, ok := val[key]
		return f, ok
	case *Struct:
		if val == nil {
			return nil, false
		}
		f, ok := val.Fields[key]
		return f, ok
	case Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(val) {
			return nil, false
		}
		return val[i], true
	default:
		return nil, false
	}
}

// Field is Get without the presence flag.
func Field(v Value, key string) Value {
	f, _ := Get(v, key)
	return f
}

// Has reports whether v carries key.
func Has(v Value, key string) bool {
	_, ok := Get(v, key)
	return ok
}

// Keys returns the own keys of a composite value in traversal order:
// RFC 8785 order for Objects and Structs, index order for Arrays.
// Scalars have no keys.
func Keys(v Value) []string {
	switch val := v.(type) {
	case Object:
		return val.SortedKeys()
	case *Struct:
		if val == nil {
			return nil
		}
		return val.Fields.SortedKeys()
	case Array:
		keys := make([]string, len(val))
		for i := range val {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	default:
		return nil
	}
}

// AsArray returns v as an Array when it is one.
// This is the explicit shape test used wherever a field is expected to
// hold a nested sequence.
func AsArray(v Value) (Array, bool) {
	arr, ok := v.(Array)
	return arr, ok
}

// Fields returns the field map of an Object or Struct.
func Fields(v Value) (Object, bool) {
	switch val := v.(type) {
	case Object:
		return val, true
	case *Struct:
		if val == nil {
			return nil, false
		}
		return val.Fields, true
	default:
		return nil, false
	}
}
