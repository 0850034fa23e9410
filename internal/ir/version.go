package ir

// Version constants for the output grammar and the compiler.
const (
	// GrammarVersion is the version of the emitted def/set grammar.
	GrammarVersion = "1"

	// CompilerVersion is the basc compiler version.
	CompilerVersion = "0.1.0"
)
