// Package deep implements structural equality, cloning and deep search
// over record values.
//
// Operations:
//   - Equals / EqualsWith: recursive field-by-field comparison with loose
//     scalar equality
//   - Clone: full deep copy that keeps every Struct kind
//   - JSONClone: serialize/deserialize round trip (lossy, plain data only)
//   - ShallowCopy: one-level copy that keeps the Struct kind
//   - FindDeep: depth-first pre-order search for a record holding key === value
//
// CYCLES:
//
// Values built from Go maps and slices can alias themselves. None of the
// operations here detect cycles; a cyclic value makes Equals and Clone
// recurse until the stack is exhausted. Callers must pass acyclic values.
//
// ASYMMETRY:
//
// With ExistsInBothOnly set, only the keys of the first argument are
// visited, so EqualsWith(a, b, o) and EqualsWith(b, a, o) can differ.
// Saved configuration diffs rely on this; it is kept as is.
package deep
