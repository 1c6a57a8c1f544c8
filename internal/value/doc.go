// Package value provides the record data model used by every reckit engine.
//
// A record is an arbitrary nested structure: objects keyed by strings,
// arrays, and scalars. Value is a sealed interface so that engines can
// exhaustively switch over the possible shapes without reflection.
//
// Shapes:
//   - Null, Bool, Int, Float, String: scalars
//   - Array: ordered sequence of values
//   - Object: string-keyed map of values
//   - *Struct: an Object that carries a Kind (the "class" of the record)
//   - Func: a callable field; never compared, never serialized
//
// A nil Value stands for "undefined" (a missing field). Get returns nil
// for absent keys and every comparison helper accepts nil.
//
// Object iteration is always in RFC 8785 key order (UTF-16 code units) so
// traversal, serialization and fingerprints are deterministic.
//
// This package imports nothing internal; all other reckit packages import it.
package value
