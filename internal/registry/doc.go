// Package registry is a SQLite-backed log of compiled validator scripts.
//
// Each successful compile can be recorded as a build. The log is append-only
// and keyed by script hash, so recording the same script twice is a no-op
// that returns the original entry.
//
// # Ordering
//
// Builds are ordered by seq, an INTEGER assigned on insert. There are no
// wall-clock timestamps; two registries fed the same compiles in the same
// order hold identical rows.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Script IDs and hashes come from internal/ir (domain-separated SHA-256,
// UUID v5).
package registry
