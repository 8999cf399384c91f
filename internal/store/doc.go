// Package store provides the SQLite-backed run ledger.
//
// Each completed pipeline run may be recorded with its configuration,
// digests, line counts and overlap result, plus the lines it rejected.
// The ledger is append-only.
//
// # Ordering
//
//   - seq is a logical clock assigned on write (MAX(seq)+1), never wall time
//   - All queries order by seq ASC, id ASC COLLATE BINARY
//
// # Idempotency
//
// Writing a run whose id already exists is a no-op that reports the
// existing seq.
//
// # Versioning
//
// A new file gets schema.sql and PRAGMA user_version = 1. Open refuses
// files stamped with a newer version (ErrUnsupportedVersion).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
