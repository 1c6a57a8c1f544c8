package seq

import (
	"cmp"
	"slices"
)

// Group is one bucket produced by GroupBy.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions seq by key. Groups are returned in ascending key
// order, not first-seen order; items keep their input order inside a group.
func GroupBy[T any, K cmp.Ordered](seq []T, key func(T) K) []Group[K, T] {
	return GroupByFunc(seq, key, compareOrdered[K])
}

// GroupByFunc is GroupBy with a caller-supplied key comparison used to
// order the groups. Keys are bucketed by ==.
func GroupByFunc[T any, K comparable](seq []T, key func(T) K, compare func(a, b K) int) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]

	for _, elem := range seq {
		k := key(elem)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, elem)
	}

	slices.SortStableFunc(groups, func(a, b Group[K, T]) int { return compare(a.Key, b.Key) })
	return groups
}

// FlatBy concatenates the child sequences of every element. children
// reports false when an element has no child sequence of the expected
// shape; such elements contribute nothing.
func FlatBy[T, C any](seq []T, children func(T) ([]C, bool)) []C {
	var out []C
	for _, elem := range seq {
		kids, ok := children(elem)
		if !ok {
			continue
		}
		out = append(out, kids...)
	}
	return out
}

// Distinct removes repeated elements, keeping each distinct element once
// at the position of its first occurrence.
func Distinct[T comparable](seq []T) []T {
	return DistinctBy(seq, func(elem T) T { return elem })
}

// DistinctBy deduplicates seq by key with map semantics: a later element
// overwrites an earlier one with the same key, and the result is ordered
// by the first insertion of each key. So the position is the first
// occurrence's and the element is the last occurrence's.
func DistinctBy[T any, K comparable](seq []T, key func(T) K) []T {
	index := make(map[K]int)
	out := make([]T, 0, len(seq))

	for _, elem := range seq {
		k := key(elem)
		if i, ok := index[k]; ok {
			out[i] = elem
			continue
		}
		index[k] = len(out)
		out = append(out, elem)
	}
	return out
}
