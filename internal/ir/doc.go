// Package ir provides the LadderCore intermediate representation consumed by
// the PlutusLadder compiler.
//
// This package contains the document model, canonical serialization, and
// content-addressed hashing. All other internal packages import ir; ir
// imports nothing internal.
//
// Key design constraints:
//   - Documents are decoded values (map[string]any), not typed structs, so the
//     compiler can reject malformed input instead of the decoder hiding it
//   - Section order is fixed by SchemaKeys and drives diagnostic order
//   - Hashes and IDs are derived from content only, never from wall-clock time
package ir
