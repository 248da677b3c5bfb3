package harness

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/plutusladder/internal/compiler"
)

// AssertionError is returned when an expectation fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // expectation that failed: error, clauses, contains, kinds
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// checkExpectations evaluates expect against result, recording every failure.
func checkExpectations(expect Expect, result *Result) {
	if expect.Error != nil {
		if err := assertError(*expect.Error, result.CompileErr); err != nil {
			result.AddError(err.Error())
		}
		return
	}

	if result.CompileErr != nil {
		result.AddError((&AssertionError{
			Type:     "compile",
			Expected: "success",
			Actual:   result.CompileErr.Error(),
		}).Error())
		return
	}

	checks := []error{
		assertClauses(expect.Clauses, result.Clauses),
		assertContains(expect.Contains, result.Script),
		assertKinds(expect.Kinds, result.Clauses),
	}
	for _, err := range checks {
		if err != nil {
			result.AddError(err.Error())
		}
	}
}

// assertError checks that err is the diagnostic named by want.
func assertError(want ExpectError, err error) error {
	if err == nil {
		return &AssertionError{Type: "error", Expected: describeExpectError(want), Actual: "success"}
	}

	got := compiler.ErrorCode(err)
	if got != want.Code {
		return &AssertionError{Type: "error", Expected: describeExpectError(want), Actual: err.Error()}
	}

	var missing *compiler.MissingKeyError
	var section *compiler.SectionError
	var inst *compiler.InstructionError
	switch {
	case errors.As(err, &missing):
		if want.Key != "" && want.Key != missing.Key {
			return &AssertionError{Type: "error", Expected: describeExpectError(want), Actual: err.Error()}
		}
	case errors.As(err, &section):
		if want.Key != "" && want.Key != section.Key {
			return &AssertionError{Type: "error", Expected: describeExpectError(want), Actual: err.Error()}
		}
	case errors.As(err, &inst):
		if want.Index != nil && *want.Index != inst.Index {
			return &AssertionError{Type: "error", Expected: describeExpectError(want), Actual: err.Error()}
		}
	}
	return nil
}

func describeExpectError(e ExpectError) string {
	var parts []string
	parts = append(parts, e.Code)
	if e.Key != "" {
		parts = append(parts, "key "+e.Key)
	}
	if e.Index != nil {
		parts = append(parts, fmt.Sprintf("index %d", *e.Index))
	}
	return strings.Join(parts, " ")
}

// assertClauses compares clauses position by position. Empty expected
// fields match anything.
func assertClauses(want []ExpectClause, got []compiler.Clause) error {
	if len(want) == 0 {
		return nil
	}
	if len(want) != len(got) {
		return &AssertionError{
			Type:     "clauses",
			Expected: fmt.Sprintf("%d clauses", len(want)),
			Actual:   fmt.Sprintf("%d clauses", len(got)),
		}
	}

	for i, w := range want {
		g := got[i]
		if (w.Label != "" && w.Label != g.Label) ||
			(w.Condition != "" && w.Condition != g.Condition) ||
			(w.Kind != "" && w.Kind != string(g.Kind)) {
			return &AssertionError{
				Type:     "clauses",
				Expected: fmt.Sprintf("[%d] %s", i, describeClause(w.Label, w.Condition, w.Kind)),
				Actual:   fmt.Sprintf("[%d] %s", i, describeClause(g.Label, g.Condition, string(g.Kind))),
			}
		}
	}
	return nil
}

func describeClause(label, condition, kind string) string {
	return fmt.Sprintf("label=%q condition=%q kind=%q", label, condition, kind)
}

// assertContains checks that the script contains every substring.
func assertContains(want []string, script compiler.ValidatorScript) error {
	var missing []string
	for _, s := range want {
		if !strings.Contains(script.String(), s) {
			missing = append(missing, fmt.Sprintf("%q", s))
		}
	}
	if len(missing) > 0 {
		return &AssertionError{
			Type:     "contains",
			Expected: "script to contain " + strings.Join(missing, ", "),
			Actual:   "not found",
		}
	}
	return nil
}

// assertKinds checks per-kind clause counts. Kinds not listed are not checked.
func assertKinds(want map[string]int, clauses []compiler.Clause) error {
	if len(want) == 0 {
		return nil
	}
	counts := compiler.KindCounts(clauses)

	kinds := make([]string, 0, len(want))
	for kind := range want {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		if got := counts[compiler.Kind(kind)]; got != want[kind] {
			return &AssertionError{
				Type:     "kinds",
				Expected: fmt.Sprintf("%d %s clauses", want[kind], kind),
				Actual:   fmt.Sprintf("%d", got),
			}
		}
	}
	return nil
}
