package compiler

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/plutusladder/internal/ir"
)

func TestValidateStructureComplete(t *testing.T) {
	doc := ir.NewDocument(ir.Instruction{Type: "INPUT", Args: "x1"})

	validated, err := ValidateStructure(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, validated)
}

func TestValidateStructureEmptySections(t *testing.T) {
	doc := map[string]any{
		"instructions":      []any{},
		"timers":            map[string]any{},
		"counters":          map[string]any{},
		"math_operations":   map[string]any{},
		"comparators":       map[string]any{},
		"set_reset_latches": map[string]any{},
		"jump_instructions": map[string]any{},
		"function_blocks":   map[string]any{},
	}

	_, err := ValidateStructure(doc)
	assert.NoError(t, err)
}

func TestValidateStructureNullSections(t *testing.T) {
	doc := ir.NewDocument()
	for _, key := range ir.SchemaKeys {
		doc[key] = nil
	}

	_, err := ValidateStructure(doc)
	assert.NoError(t, err, "null sections are present and empty")
}

func TestValidateStructureMissingEachKey(t *testing.T) {
	for _, key := range ir.SchemaKeys {
		t.Run(key, func(t *testing.T) {
			doc := ir.NewDocument(ir.Instruction{Type: "INPUT", Args: "x1"}).Without(key)

			_, err := ValidateStructure(doc)
			require.Error(t, err)

			var missing *MissingKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, key, missing.Key)
			assert.True(t, IsMissingKey(err))
			assert.Equal(t, ErrCodeMissingSchemaKey, ErrorCode(err))
		})
	}
}

func TestValidateStructureReportsFirstMissingKey(t *testing.T) {
	doc := ir.NewDocument().Without(ir.KeyFunctionBlocks, ir.KeyCounters, ir.KeyComparators)

	_, err := ValidateStructure(doc)

	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ir.KeyCounters, missing.Key, "counters precedes comparators and function_blocks in schema order")
}

func TestValidateStructureNotAnObject(t *testing.T) {
	inputs := map[string]any{
		"nil":      nil,
		"string":   "ladder",
		"list":     []any{map[string]any{"type": "INPUT", "args": "x1"}},
		"nil map":  map[string]any(nil),
		"number":   42,
		"document": ir.Document(nil),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateStructure(input)

			var missing *MissingKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, ir.KeyInstructions, missing.Key)
		})
	}
}

func TestValidateStructureMalformedSections(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want string
		got  string
	}{
		{"instructions as mapping", ir.KeyInstructions, map[string]any{}, "sequence", "mapping"},
		{"instructions as string", ir.KeyInstructions, "INPUT x1", "sequence", "string"},
		{"timers as list", ir.KeyTimers, []any{}, "mapping", "sequence"},
		{"counters as number", ir.KeyCounters, 3, "mapping", "number"},
		{"latches as bool", ir.KeySetResetLatches, true, "mapping", "boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ir.NewDocument()
			doc[tt.key] = tt.val

			_, err := ValidateStructure(doc)

			var section *SectionError
			require.ErrorAs(t, err, &section)
			assert.Equal(t, tt.key, section.Key)
			assert.Equal(t, tt.want, section.Want)
			assert.Equal(t, tt.got, section.Got)
			assert.ErrorIs(t, err, ErrMalformedSection)
			assert.Equal(t, ErrCodeMalformedSection, ErrorCode(err))
		})
	}
}

func TestValidateStructureMissingBeforeMalformed(t *testing.T) {
	// counters is missing, comparators is malformed; counters comes first.
	doc := ir.NewDocument().Without(ir.KeyCounters)
	doc[ir.KeyComparators] = "oops"

	_, err := ValidateStructure(doc)
	assert.True(t, IsMissingKey(err))
}

func TestValidateStructurePassesThroughUnchanged(t *testing.T) {
	raw := map[string]any(ir.NewDocument(ir.Instruction{Type: "INPUT", Args: "x1"}))
	raw["extra"] = "kept"

	validated, err := ValidateStructure(raw)
	require.NoError(t, err)

	assert.Equal(t, reflect.ValueOf(raw).Pointer(), reflect.ValueOf(validated).Pointer(), "no copy is made")
	assert.Equal(t, "kept", validated["extra"])
	assert.Len(t, validated, len(ir.SchemaKeys)+1)
}

func TestValidateStructureAcceptsNestedDocuments(t *testing.T) {
	doc := ir.NewDocument()
	doc[ir.KeyTimers] = ir.Document{"t1": map[string]any{"preset": 500}}

	_, err := ValidateStructure(doc)
	assert.NoError(t, err)
}
