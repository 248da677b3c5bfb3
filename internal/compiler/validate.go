package compiler

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/plutusladder/internal/ir"
)

// ValidationError is one entry of a validation report.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate reports every structural defect in v.
// Unlike Compile it does not fail fast: all missing keys, malformed sections
// and invalid instructions are returned, in schema order then index order.
// An empty result means Compile would succeed.
func Validate(v any) []ValidationError {
	var errs []ValidationError

	doc, _ := asDocument(v)
	for _, key := range ir.SchemaKeys {
		if err := checkSection(doc, key); err != nil {
			errs = append(errs, toValidationError(key, err))
		}
	}

	lower := cases.Lower(language.Und)
	for i, elem := range doc.Instructions() {
		if _, err := normalizeInstruction(i, elem, lower); err != nil {
			errs = append(errs, toValidationError(fmt.Sprintf("instructions[%d]", i), err))
		}
	}

	return errs
}

// Describe converts a compile error into a ValidationError, deriving the
// field from the error. Errors from outside the compiler get code E001.
func Describe(err error) ValidationError {
	var missing *MissingKeyError
	var section *SectionError
	var inst *InstructionError
	switch {
	case errors.As(err, &missing):
		return toValidationError(missing.Key, err)
	case errors.As(err, &section):
		return toValidationError(section.Key, err)
	case errors.As(err, &inst):
		return toValidationError(fmt.Sprintf("instructions[%d]", inst.Index), err)
	default:
		return ValidationError{Field: "document", Message: err.Error(), Code: "E001"}
	}
}

func toValidationError(field string, err error) ValidationError {
	message := err.Error()

	var missing *MissingKeyError
	var section *SectionError
	var inst *InstructionError
	switch {
	case errors.As(err, &missing):
		message = "required key is missing"
	case errors.As(err, &section):
		message = fmt.Sprintf("expected %s, got %s", section.Want, section.Got)
	case errors.As(err, &inst):
		message = inst.Reason
	}

	return ValidationError{
		Field:   field,
		Message: message,
		Code:    ErrorCode(err),
	}
}
