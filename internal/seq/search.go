package seq

import (
	"slices"

	"golang.org/x/text/cases"
)

// First returns the first element satisfying pred, or def.
func First[T any](seq []T, pred func(T) bool, def T) T {
	for _, elem := range seq {
		if pred(elem) {
			return elem
		}
	}
	return def
}

// Last returns the last element satisfying pred, or def.
func Last[T any](seq []T, pred func(T) bool, def T) T {
	for i := len(seq) - 1; i >= 0; i-- {
		if pred(seq[i]) {
			return seq[i]
		}
	}
	return def
}

// Take returns a copy of the first n elements. n larger than the sequence
// takes everything; negative n takes nothing.
func Take[T any](seq []T, n int) []T {
	n = clamp(n, len(seq))
	return slices.Clone(seq[:n])
}

// Offset returns a copy of the elements after skipping the first n.
// n larger than the sequence yields an empty slice; negative n skips nothing.
func Offset[T any](seq []T, n int) []T {
	n = clamp(n, len(seq))
	out := make([]T, len(seq)-n)
	copy(out, seq[n:])
	return out
}

func clamp(n, length int) int {
	return max(0, min(n, length))
}

// Exclude returns the elements for which match(elem, target) is false.
func Exclude[T, U any](seq []T, target U, match func(T, U) bool) []T {
	return Remove(seq, func(elem T) bool { return match(elem, target) })
}

// ExcludeAny returns the elements that match none of targets.
func ExcludeAny[T, U any](seq []T, targets []U, match func(T, U) bool) []T {
	return Remove(seq, func(elem T) bool {
		return slices.ContainsFunc(targets, func(t U) bool { return match(elem, t) })
	})
}

// Remove returns a copy of seq without the elements satisfying pred.
func Remove[T any](seq []T, pred func(T) bool) []T {
	out := make([]T, 0, len(seq))
	for _, elem := range seq {
		if !pred(elem) {
			out = append(out, elem)
		}
	}
	return out
}

// RemoveInPlace deletes the elements satisfying pred from seq itself,
// walking from the end so earlier indices stay valid, and returns the
// shortened slice. The tail beyond the new length is zeroed.
func RemoveInPlace[T any](seq []T, pred func(T) bool) []T {
	for i := len(seq) - 1; i >= 0; i-- {
		if pred(seq[i]) {
			seq = slices.Delete(seq, i, i+1)
		}
	}
	return seq
}

// IncludesIgnoreCase reports whether seq contains s under Unicode case
// folding.
func IncludesIgnoreCase(seq []string, s string) bool {
	fold := cases.Fold()
	want := fold.String(s)
	for _, elem := range seq {
		if fold.String(elem) == want {
			return true
		}
	}
	return false
}
