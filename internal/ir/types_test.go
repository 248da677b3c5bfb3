package ir

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaKeysOrder(t *testing.T) {
	assert.Equal(t, []string{
		"instructions",
		"timers",
		"counters",
		"math_operations",
		"comparators",
		"set_reset_latches",
		"jump_instructions",
		"function_blocks",
	}, SchemaKeys)
	assert.Equal(t, SchemaKeys[1:], CategoryKeys)
}

func TestCategoryKeysIndependentOfSchemaKeys(t *testing.T) {
	categories := slices.Clone(CategoryKeys)
	CategoryKeys[0] = "clobbered"
	t.Cleanup(func() { copy(CategoryKeys, categories) })

	assert.Equal(t, KeyTimers, SchemaKeys[1])
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(Instruction{Type: "INPUT", Args: "x1"})

	for _, key := range SchemaKeys {
		assert.Contains(t, doc, key)
	}

	instructions := doc.Instructions()
	require.Len(t, instructions, 1)
	assert.Equal(t, map[string]any{"type": "INPUT", "args": "x1"}, instructions[0])

	for _, key := range CategoryKeys {
		assert.Equal(t, map[string]any{}, doc[key], key)
	}
}

func TestNewDocumentEmpty(t *testing.T) {
	doc := NewDocument()
	assert.NotNil(t, doc.Instructions())
	assert.Empty(t, doc.Instructions())
}

func TestDocumentAccessorsWrongShape(t *testing.T) {
	doc := Document{
		KeyInstructions: "not a list",
		KeyTimers:       []any{},
	}

	assert.Nil(t, doc.Instructions())
}

func TestDocumentWithout(t *testing.T) {
	doc := NewDocument()
	trimmed := doc.Without(KeyCounters, KeyTimers)

	assert.NotContains(t, trimmed, KeyCounters)
	assert.NotContains(t, trimmed, KeyTimers)
	assert.Contains(t, doc, KeyCounters, "original must not be mutated")
	assert.Len(t, trimmed, len(SchemaKeys)-2)
}
