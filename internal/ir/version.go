package ir

// Version constants for the IR schema and the compiler.
const (
	// IRVersion is the LadderCore IR schema version.
	IRVersion = "1"

	// CompilerVersion is the PlutusLadder compiler version.
	CompilerVersion = "0.2.0"
)
