package compiler

import "fmt"

// Options configures a Compiler.
type Options struct {
	// ModuleName is the Haskell module declared by emitted scripts.
	// Empty means DefaultModuleName.
	ModuleName string
}

// Compiler runs the IR-to-validator pipeline with fixed options.
// A Compiler holds no per-call state and is safe for concurrent use.
type Compiler struct {
	opts Options
}

// Result is the output of one successful compile call.
type Result struct {
	Script  ValidatorScript `json:"script"`
	Clauses []Clause        `json:"clauses"`
}

// New creates a Compiler. It fails if the module name is not a valid
// Haskell module name.
func New(opts Options) (*Compiler, error) {
	if opts.ModuleName != "" && !ValidModuleName(opts.ModuleName) {
		return nil, fmt.Errorf("invalid module name %q: expected a capitalised Haskell module name such as %q",
			opts.ModuleName, DefaultModuleName)
	}
	return &Compiler{opts: opts}, nil
}

// Compile validates doc and emits its validator script.
// The first defect aborts the call with *MissingKeyError, *SectionError or
// *InstructionError; no partial result is returned.
func (c *Compiler) Compile(doc any) (*Result, error) {
	validated, err := ValidateStructure(doc)
	if err != nil {
		return nil, err
	}

	clauses, err := Normalize(validated.Instructions())
	if err != nil {
		return nil, err
	}

	script := Emitter{ModuleName: c.opts.ModuleName}.Emit(Group(clauses))
	return &Result{Script: script, Clauses: clauses}, nil
}

// Compile runs the pipeline with default options and returns only the script.
func Compile(doc any) (ValidatorScript, error) {
	result, err := (&Compiler{}).Compile(doc)
	if err != nil {
		return "", err
	}
	return result.Script, nil
}

// KindCounts tallies clauses by kind. Kinds with no clauses are omitted.
func KindCounts(clauses []Clause) map[Kind]int {
	counts := make(map[Kind]int)
	for _, c := range clauses {
		counts[c.Kind]++
	}
	return counts
}
