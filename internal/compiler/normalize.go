package compiler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/plutusladder/internal/ir"
)

// Clause is one normalized instruction, ready to be rendered.
type Clause struct {
	Index     int    `json:"index"`     // position in the source instruction sequence
	Label     string `json:"label"`     // lower-cased instruction type
	Condition string `json:"condition"` // boolean expression text, verbatim from args
	Kind      Kind   `json:"kind"`
}

// Normalize turns an instruction sequence into clauses, one per instruction,
// in source order.
//
// It stops at the first defective instruction and returns an *InstructionError
// carrying its index; no clauses are returned in that case.
func Normalize(instructions []any) ([]Clause, error) {
	// cases.Caser is stateful; one per call keeps Normalize safe for concurrent use.
	lower := cases.Lower(language.Und)

	clauses := make([]Clause, 0, len(instructions))
	for i, elem := range instructions {
		clause, err := normalizeInstruction(i, elem, lower)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func normalizeInstruction(index int, elem any, lower cases.Caser) (Clause, error) {
	fields, ok := asMapping(elem)
	if !ok {
		return Clause{}, &InstructionError{Index: index, Reason: fmt.Sprintf("expected object, got %s", shapeName(elem))}
	}

	rawType, ok := fields[ir.FieldType]
	if !ok {
		return Clause{}, &InstructionError{Index: index, Reason: "missing type"}
	}
	typ, ok := rawType.(string)
	if !ok {
		return Clause{}, &InstructionError{Index: index, Reason: fmt.Sprintf("type must be a string, got %s", shapeName(rawType))}
	}
	if strings.TrimSpace(typ) == "" {
		return Clause{}, &InstructionError{Index: index, Reason: "type is empty"}
	}

	rawArgs, ok := fields[ir.FieldArgs]
	if !ok {
		return Clause{}, &InstructionError{Index: index, Reason: "missing args"}
	}
	condition, err := conditionText(rawArgs)
	if err != nil {
		return Clause{}, &InstructionError{Index: index, Reason: err.Error()}
	}

	label := lower.String(typ)
	return Clause{
		Index:     index,
		Label:     label,
		Condition: condition,
		Kind:      Classify(label),
	}, nil
}

// conditionText renders args as the clause's boolean expression.
// Strings pass through verbatim; the expression is not parsed here.
func conditionText(args any) (string, error) {
	if list, ok := args.([]any); ok {
		if len(list) == 0 {
			return "", fmt.Errorf("args is empty")
		}
		operands := make([]string, len(list))
		for i, elem := range list {
			text, err := scalarText(elem)
			if err != nil {
				return "", fmt.Errorf("args[%d]: %w", i, err)
			}
			operands[i] = text
		}
		return strings.Join(operands, " "), nil
	}
	return scalarText(args)
}

func scalarText(v any) (string, error) {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return "", fmt.Errorf("args is empty")
		}
		return val, nil
	case bool:
		if val {
			return "True", nil
		}
		return "False", nil
	case json.Number:
		return val.String(), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case nil:
		return "", fmt.Errorf("args is null")
	default:
		return "", fmt.Errorf("args must be an expression or operand list, got %s", shapeName(v))
	}
}
