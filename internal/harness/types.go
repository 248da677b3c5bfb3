package harness

import (
	"github.com/roach88/plutusladder/internal/compiler"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Errors lists failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Script is the emitted script, empty if the compile failed.
	Script compiler.ValidatorScript `json:"script,omitempty"`

	// Clauses are the normalized clauses, nil if the compile failed.
	Clauses []compiler.Clause `json:"clauses,omitempty"`

	// CompileErr is the compile diagnostic, nil on success.
	CompileErr error `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// ErrorCode returns the code of the compile diagnostic, or "" on success.
func (r *Result) ErrorCode() string {
	if r.CompileErr == nil {
		return ""
	}
	return compiler.ErrorCode(r.CompileErr)
}
