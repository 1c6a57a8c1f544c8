package deep

import "github.com/roach88/reckit/internal/value"

// FindDeep searches v depth-first, pre-order, for the first Object or
// Struct whose field key is strictly equal to want (value.StrictEqual).
//
// Children are visited in value.Keys order: index order for Arrays and
// RFC 8785 key order for Objects. The second result is false when no
// nested record matches.
func FindDeep(v value.Value, key string, want value.Value) (value.Value, bool) {
	if _, isRecord := value.Fields(v); isRecord {
		if f, ok := value.Get(v, key); ok && value.StrictEqual(f, want) {
			return v, true
		}
	}

	for _, k := range value.Keys(v) {
		child := value.Field(v, k)
		if !value.IsComposite(child) {
			continue
		}
		if found, ok := FindDeep(child, key, want); ok {
			return found, true
		}
	}
	return nil, false
}
