package seq

// InnerJoin emits sel(s, t) for every pair where match(s, t) holds, in
// source-major, target-minor order. A source matching k targets yields k
// outputs; an unmatched source yields none.
func InnerJoin[S, T, R any](source []S, target []T, match func(S, T) bool, sel func(*S, *T) R) []R {
	out := make([]R, 0, len(source))
	for i := range source {
		for j := range target {
			if match(source[i], target[j]) {
				out = append(out, sel(&source[i], &target[j]))
			}
		}
	}
	return out
}

// LeftJoin is InnerJoin plus one sel(s, nil) for each source that matched
// no target, emitted in place of that source's matches.
func LeftJoin[S, T, R any](source []S, target []T, match func(S, T) bool, sel func(*S, *T) R) []R {
	out := make([]R, 0, len(source))
	for i := range source {
		matched := false
		for j := range target {
			if match(source[i], target[j]) {
				matched = true
				out = append(out, sel(&source[i], &target[j]))
			}
		}
		if !matched {
			out = append(out, sel(&source[i], nil))
		}
	}
	return out
}

// RightJoin is LeftJoin with the roles swapped: output is target-major,
// and each target that matched no source yields one sel(nil, t). The
// predicate and selector keep their (source, target) argument order.
func RightJoin[S, T, R any](source []S, target []T, match func(S, T) bool, sel func(*S, *T) R) []R {
	out := make([]R, 0, len(target))
	for j := range target {
		matched := false
		for i := range source {
			if match(source[i], target[j]) {
				matched = true
				out = append(out, sel(&source[i], &target[j]))
			}
		}
		if !matched {
			out = append(out, sel(nil, &target[j]))
		}
	}
	return out
}

// FullJoin emits every matched pair (source-major, target-minor), then one
// sel(s, nil) per source matched zero times, then one sel(nil, t) per
// target matched zero times. Every input element appears in the output.
func FullJoin[S, T, R any](source []S, target []T, match func(S, T) bool, sel func(*S, *T) R) []R {
	out := make([]R, 0, len(source)+len(target))
	sourceMatched := make([]bool, len(source))
	targetMatched := make([]bool, len(target))

	for i := range source {
		for j := range target {
			if match(source[i], target[j]) {
				sourceMatched[i] = true
				targetMatched[j] = true
				out = append(out, sel(&source[i], &target[j]))
			}
		}
	}
	for i := range source {
		if !sourceMatched[i] {
			out = append(out, sel(&source[i], nil))
		}
	}
	for j := range target {
		if !targetMatched[j] {
			out = append(out, sel(nil, &target[j]))
		}
	}
	return out
}

// CrossJoin emits sel(s, t) for every pair: len(source)*len(target) outputs.
func CrossJoin[S, T, R any](source []S, target []T, sel func(*S, *T) R) []R {
	out := make([]R, 0, len(source)*len(target))
	for i := range source {
		for j := range target {
			out = append(out, sel(&source[i], &target[j]))
		}
	}
	return out
}
