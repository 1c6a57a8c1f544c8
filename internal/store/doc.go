// Package store provides SQLite-backed persistence for record snapshots.
//
// A snapshot is one saved version of a named record sequence. The store
// is an append-only log per name:
//   - Snapshots: id, name, seq, fingerprint, canonical JSON body
//
// # Patterns
//
// Change gating:
//   - Save compares the new records with the latest snapshot using
//     deep.Equals and writes nothing when they are equal
//   - Callers get the existing snapshot back with saved=false
//
// Logical ordering:
//   - seq is a per-name counter starting at 1, never a timestamp
//   - All queries order by seq ASC, id ASC COLLATE BINARY
//
// Content identity:
//   - body is RFC 8785 canonical JSON (value.MarshalCanonical)
//   - fingerprint is value.Fingerprint of the same sequence
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
