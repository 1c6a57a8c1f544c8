package seq

import (
	"cmp"
	"slices"
)

// SortBy returns a copy of seq stably sorted by key. Elements whose keys
// are neither less nor greater than each other keep their input order.
// When ascending is false the comparison is negated.
func SortBy[T any, K cmp.Ordered](seq []T, key func(T) K, ascending bool) []T {
	out := slices.Clone(seq)
	SortByInPlace(out, key, ascending)
	return out
}

// SortByInPlace is SortBy on seq itself.
func SortByInPlace[T any, K cmp.Ordered](seq []T, key func(T) K, ascending bool) {
	SortFuncInPlace(seq, func(a, b T) int { return compareOrdered(key(a), key(b)) }, ascending)
}

// SortFunc returns a copy of seq stably sorted by compare, negated when
// ascending is false.
func SortFunc[T any](seq []T, compare func(a, b T) int, ascending bool) []T {
	out := slices.Clone(seq)
	SortFuncInPlace(out, compare, ascending)
	return out
}

// SortFuncInPlace is SortFunc on seq itself.
func SortFuncInPlace[T any](seq []T, compare func(a, b T) int, ascending bool) {
	sign := 1
	if !ascending {
		sign = -1
	}
	slices.SortStableFunc(seq, func(a, b T) int { return sign * compare(a, b) })
}

// compareOrdered compares with the < and > operators only. Unlike
// cmp.Compare, NaN is neither less nor greater than anything, so it keeps
// its input position under a stable sort.
func compareOrdered[K cmp.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortByKey sorts seq by key, then pins elements to the ends.
//
// After the sort, top is walked from its last entry to its first; for each
// entry the first element whose key equals it is moved to index 0, so the
// pinned elements end up at the front in the order top declares them. Then
// bottom is walked in order and each first match is moved to the end. A
// pin with no matching element is a no-op.
func SortByKey[T any, K cmp.Ordered](seq []T, key func(T) K, ascending bool, top, bottom []K) []T {
	sorted := SortBy(seq, key, ascending)
	return Pin(sorted, top, bottom, func(elem T, pin K) bool { return key(elem) == pin })
}

// Pin returns a copy of seq with the first element matching each top pin
// moved to the front and the first element matching each bottom pin moved
// to the back. See SortByKey for the exact walk order.
func Pin[T, P any](seq []T, top, bottom []P, matches func(elem T, pin P) bool) []T {
	out := slices.Clone(seq)

	for i := len(top) - 1; i >= 0; i-- {
		idx := slices.IndexFunc(out, func(elem T) bool { return matches(elem, top[i]) })
		if idx < 0 {
			continue
		}
		elem := out[idx]
		out = slices.Delete(out, idx, idx+1)
		out = slices.Insert(out, 0, elem)
	}

	for _, pin := range bottom {
		idx := slices.IndexFunc(out, func(elem T) bool { return matches(elem, pin) })
		if idx < 0 {
			continue
		}
		elem := out[idx]
		out = slices.Delete(out, idx, idx+1)
		out = append(out, elem)
	}

	return out
}

// Move returns a copy of seq with the element at from removed and
// reinserted at to. Both indices must lie in [0, len(seq)).
func Move[T any](seq []T, from, to int) ([]T, error) {
	out := slices.Clone(seq)
	if err := MoveInPlace(out, from, to); err != nil {
		return nil, err
	}
	return out, nil
}

// MoveInPlace is Move on seq itself. The length of seq does not change.
func MoveInPlace[T any](seq []T, from, to int) error {
	if from < 0 || from >= len(seq) {
		return &IndexError{Op: "move", Index: from, Len: len(seq)}
	}
	if to < 0 || to >= len(seq) {
		return &IndexError{Op: "move", Index: to, Len: len(seq)}
	}

	elem := seq[from]
	switch {
	case from < to:
		copy(seq[from:to], seq[from+1:to+1])
	case from > to:
		copy(seq[to+1:from+1], seq[to:from])
	}
	seq[to] = elem
	return nil
}

// MustMove is like Move but panics on an out-of-range index.
// Use where a bad index is a programming error.
func MustMove[T any](seq []T, from, to int) []T {
	out, err := Move(seq, from, to)
	if err != nil {
		panic(err)
	}
	return out
}
