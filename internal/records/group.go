package records

import (
	"fmt"
	"slices"

	"github.com/roach88/reckit/internal/deep"
	"github.com/roach88/reckit/internal/seq"
	"github.com/roach88/reckit/internal/value"
)

// GroupByProp partitions rs by the field groupKey and returns one Object
// per group: {keyField: <key>, arrayField: [members...]}.
//
// Keys are bucketed by their string form, the way object properties
// would be, and the group keeps the first key value seen. Groups come
// back in ascending key order under value.LooseCompare, not first-seen
// order. Each member is a shallow copy of the input record, so groups
// never alias the caller's records. Elements that are not records are
// skipped.
func GroupByProp(rs []value.Value, groupKey, keyField, arrayField string) []value.Value {
	type bucket struct {
		key     value.Value
		members value.Array
	}

	index := make(map[string]int)
	var buckets []bucket

	for _, r := range rs {
		if _, ok := value.Fields(r); !ok {
			continue
		}
		k := value.Field(r, groupKey)
		name := value.ToString(k)
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, bucket{key: k})
		}
		buckets[i].members = append(buckets[i].members, deep.ShallowCopy(r))
	}

	slices.SortStableFunc(buckets, func(a, b bucket) int { return value.LooseCompare(a.key, b.key) })

	out := make([]value.Value, len(buckets))
	for i, b := range buckets {
		out[i] = value.Object{keyField: b.key, arrayField: b.members}
	}
	return out
}

// FlatByField concatenates the Array held in childField of every record.
// Records whose field is missing or not an Array contribute nothing.
func FlatByField(rs []value.Value, childField string) []value.Value {
	return seq.FlatBy(rs, func(r value.Value) ([]value.Value, bool) {
		return value.AsArray(value.Field(r, childField))
	})
}

// DistinctByField deduplicates rs by the named field. The last record for
// a key wins and takes the position of the key's first occurrence. With an
// empty field name the record itself is the key: scalars by value,
// composites by reference.
func DistinctByField(rs []value.Value, field string) []value.Value {
	if field == "" {
		return seq.DistinctBy(rs, identityOf)
	}
	return seq.DistinctBy(rs, func(r value.Value) identity {
		return identityOf(value.Field(r, field))
	})
}

// DistinctByContent deduplicates rs by canonical content: two rows are the
// same key when their value.Fingerprint matches, so records decoded from a
// file collapse when they hold the same data. Keeps the last row for a key
// at the first one's position. Rows holding NaN or infinite numbers have
// no canonical form and fail the call.
func DistinctByContent(rs []value.Value) ([]value.Value, error) {
	keys := make([]string, len(rs))
	for i, r := range rs {
		fp, err := value.Fingerprint(r)
		if err != nil {
			return nil, fmt.Errorf("distinct row %d: %w", i, err)
		}
		keys[i] = fp
	}

	index := make(map[string]int, len(rs))
	out := make([]value.Value, 0, len(rs))
	for i, r := range rs {
		if j, ok := index[keys[i]]; ok {
			out[j] = r
			continue
		}
		index[keys[i]] = len(out)
		out = append(out, r)
	}
	return out, nil
}
