package records

import "github.com/roach88/reckit/internal/value"

// FieldEquals returns a join predicate that loosely compares the
// sourceKey field of the source record with the targetKey field of the
// target record. Two records that both lack their key match, as undefined
// equals undefined.
func FieldEquals(sourceKey, targetKey string) func(s, t value.Value) bool {
	return func(s, t value.Value) bool {
		return value.LooseEqual(value.Field(s, sourceKey), value.Field(t, targetKey))
	}
}

// AllFieldsEqual combines several FieldEquals predicates with AND.
// keys maps source field names to target field names.
func AllFieldsEqual(keys map[string]string) func(s, t value.Value) bool {
	return func(s, t value.Value) bool {
		for sk, tk := range keys {
			if !value.LooseEqual(value.Field(s, sk), value.Field(t, tk)) {
				return false
			}
		}
		return true
	}
}

// Merge returns a join projection that flattens a pair into one Object.
// Source fields are copied first, then target fields under prefix+name,
// overwriting on collision. A nil side contributes nothing. Struct kinds
// are not kept.
func Merge(prefix string) func(s, t *value.Value) value.Value {
	return func(s, t *value.Value) value.Value {
		out := value.Object{}
		if s != nil {
			if fields, ok := value.Fields(*s); ok {
				for k, v := range fields {
					out[k] = v
				}
			}
		}
		if t != nil {
			if fields, ok := value.Fields(*t); ok {
				for k, v := range fields {
					out[prefix+k] = v
				}
			}
		}
		return out
	}
}

// Pair returns a join projection that keeps both sides under the given
// names. A nil side becomes Null.
func Pair(sourceName, targetName string) func(s, t *value.Value) value.Value {
	return func(s, t *value.Value) value.Value {
		out := value.Object{sourceName: value.Null{}, targetName: value.Null{}}
		if s != nil {
			out[sourceName] = *s
		}
		if t != nil {
			out[targetName] = *t
		}
		return out
	}
}
