package compiler

import (
	"fmt"
	"strings"
	"unicode"
)

// Group renders each clause as a trace-wrapped boolean expression, in input order.
// Order matters: the emitted conjunction short-circuits, so earlier clauses
// report their trace label first.
//
// An empty input yields an empty result; the emitter owns the empty-body policy.
func Group(clauses []Clause) []string {
	rendered := make([]string, len(clauses))
	for i, c := range clauses {
		rendered[i] = RenderClause(c)
	}
	return rendered
}

// RenderClause renders one clause as
//
//	traceIfFalse "Condition <index> failed: <label>" (<condition>)
func RenderClause(c Clause) string {
	return fmt.Sprintf("traceIfFalse %s (%s)", haskellString(TraceLabel(c)), c.Condition)
}

// TraceLabel is the diagnostic message attached to a clause.
func TraceLabel(c Clause) string {
	return fmt.Sprintf("Condition %d failed: %s", c.Index, c.Label)
}

// haskellString quotes s as a Haskell string literal.
func haskellString(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.WriteByte('"')
	for i, r := range runes {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if !unicode.IsControl(r) {
				b.WriteRune(r)
				continue
			}
			fmt.Fprintf(&b, `\%d`, r)
			// \& ends a numeric escape that is followed by a digit.
			if i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
				b.WriteString(`\&`)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
