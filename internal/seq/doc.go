// Package seq provides generic in-memory collection operations over slices:
// joins, ordering, grouping and search.
//
// Every function is free-standing and generic; nothing is attached to a
// global type. Predicates, selectors and key functions must be pure: they
// are called O(n·m) times by the joins and may be called in any order by
// the sorts. A panicking callback propagates to the caller unrecovered.
//
// MUTATION:
//
// Functions return new slices and leave their inputs untouched. The few
// operations that have an in-place form name it explicitly (SortByInPlace,
// MoveInPlace, RemoveInPlace). In-place calls on a slice shared between
// goroutines are critical sections the caller must guard.
//
// JOINS:
//
//	InnerJoin   matched (s, t) pairs only
//	LeftJoin    matched pairs, plus (s, nil) for each unmatched source
//	RightJoin   matched pairs, plus (nil, t) for each unmatched target
//	FullJoin    matched pairs, then (s, nil), then (nil, t)
//	CrossJoin   every (s, t) pair, no predicate
//
// Selectors receive pointers into the input slices; nil marks the missing
// side of an unmatched row. Joins evaluate the predicate for every pair
// with no hashing or indexing, which is only suitable for UI-scale inputs.
package seq
