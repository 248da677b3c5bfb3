// Package compiler turns LadderCore IR documents into PlutusTx validator scripts.
//
// The pipeline is strictly linear and pure:
//
//	ValidateStructure -> Normalize -> Group -> Emit
//
// Each stage either hands its output to the next or fails with a typed,
// coded error that aborts the whole compile call. No stage repairs input,
// skips instructions, or returns partial output: a validator with a missing
// clause would accept transactions the ladder program forbids.
//
// The only deliberate default is the empty program: a document with no
// instructions compiles to a validator whose body is True.
//
// The package performs no I/O and keeps no state between calls, so Compile
// is safe for concurrent use on independent documents.
package compiler
