package compiler

import (
	"errors"
	"fmt"
)

// Compile error codes (E200-E299)
const (
	ErrCodeMissingSchemaKey   = "E201" // required top-level key absent
	ErrCodeMalformedSection   = "E202" // key present with the wrong shape
	ErrCodeInvalidInstruction = "E203" // instruction lacks type/args or is not an object
)

// Sentinel errors for errors.Is matching.
var (
	ErrMissingSchemaKey   = errors.New("missing schema key")
	ErrMalformedSection   = errors.New("malformed section")
	ErrInvalidInstruction = errors.New("invalid instruction")
)

// MissingKeyError reports the first required IR key that is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("[%s] %s: required key is missing", ErrCodeMissingSchemaKey, e.Key)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingSchemaKey }

// Code returns the diagnostic code.
func (e *MissingKeyError) Code() string { return ErrCodeMissingSchemaKey }

// SectionError reports a required key whose value has the wrong shape,
// e.g. instructions given as a mapping.
type SectionError struct {
	Key  string
	Want string // "sequence" or "mapping"
	Got  string
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("[%s] %s: expected %s, got %s", ErrCodeMalformedSection, e.Key, e.Want, e.Got)
}

func (e *SectionError) Unwrap() error { return ErrMalformedSection }

// Code returns the diagnostic code.
func (e *SectionError) Code() string { return ErrCodeMalformedSection }

// InstructionError reports the first instruction that cannot become a clause.
type InstructionError struct {
	Index  int
	Reason string
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("[%s] instructions[%d]: %s", ErrCodeInvalidInstruction, e.Index, e.Reason)
}

func (e *InstructionError) Unwrap() error { return ErrInvalidInstruction }

// Code returns the diagnostic code.
func (e *InstructionError) Code() string { return ErrCodeInvalidInstruction }

// ErrorCode extracts the diagnostic code from a compile error.
// Returns "" for errors that did not come from the pipeline.
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// IsMissingKey returns true if err reports a missing schema key.
func IsMissingKey(err error) bool {
	return errors.Is(err, ErrMissingSchemaKey)
}

// IsInvalidInstruction returns true if err reports a malformed instruction.
func IsInvalidInstruction(err error) bool {
	return errors.Is(err, ErrInvalidInstruction)
}
