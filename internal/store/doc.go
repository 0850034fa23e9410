// Package store archives compiled programs in SQLite.
//
// Each save of a scene's program is a build row keyed by a UUIDv7 build id
// and ordered by a logical sequence number. Saving a program whose content
// hash equals the scene's latest build is a no-op, so the history of a
// scene only records actual changes.
//
// # Ordering
//
// All queries order by seq ASC, id ASC COLLATE BINARY. Wall time is never
// stored or used for ordering.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Content hashes come from ir.ProgramHash (SHA-256 with domain separation
// over the canonical program text).
package store
