// Package records applies the generic seq engines to record sequences,
// addressing fields by name.
//
// A record sequence is a []value.Value whose elements are usually Objects
// or Structs. Fields are read with value.Get, so a missing field is
// undefined (nil) rather than an error, and elements of the wrong shape
// are skipped wherever an operation needs a field map or a nested array.
//
// Keys are compared the loose way (value.LooseCompare, value.LooseEqual)
// except where a pin or a dedup key needs identity, which uses
// value.StrictEqual and reference identity for composites.
package records
