package ir

// Top-level keys of a LadderCore IR document.
const (
	KeyInstructions     = "instructions"
	KeyTimers           = "timers"
	KeyCounters         = "counters"
	KeyMathOperations   = "math_operations"
	KeyComparators      = "comparators"
	KeySetResetLatches  = "set_reset_latches"
	KeyJumpInstructions = "jump_instructions"
	KeyFunctionBlocks   = "function_blocks"
)

// Instruction field names.
const (
	FieldType = "type"
	FieldArgs = "args"
)

// SchemaKeys lists every required top-level key in canonical order.
// Diagnostics that report a single missing key report the first one in this order.
var SchemaKeys = []string{
	KeyInstructions,
	KeyTimers,
	KeyCounters,
	KeyMathOperations,
	KeyComparators,
	KeySetResetLatches,
	KeyJumpInstructions,
	KeyFunctionBlocks,
}

// CategoryKeys lists the logic-category sections (every schema key except instructions).
var CategoryKeys = []string{
	KeyTimers,
	KeyCounters,
	KeyMathOperations,
	KeyComparators,
	KeySetResetLatches,
	KeyJumpInstructions,
	KeyFunctionBlocks,
}

// Document is a decoded LadderCore IR document.
//
// It is a plain view over the decoder's output. Values are whatever the
// decoder produced (json.Number, int, float64, string, bool, []any,
// map[string]any, nil); use the compiler's schema validator before trusting
// any field.
type Document map[string]any

// Instructions returns the instruction sequence, or nil if the key is
// absent, null, or not a sequence.
func (d Document) Instructions() []any {
	list, _ := d[KeyInstructions].([]any)
	return list
}

// Instruction is the typed form of one ladder-logic step.
// Go callers that build documents programmatically use it with NewDocument.
type Instruction struct {
	Type string `json:"type" yaml:"type"`
	Args string `json:"args" yaml:"args"`
}

// NewDocument builds a well-formed document from the given instructions,
// with every category section present and empty.
func NewDocument(instructions ...Instruction) Document {
	list := make([]any, len(instructions))
	for i, inst := range instructions {
		list[i] = map[string]any{
			FieldType: inst.Type,
			FieldArgs: inst.Args,
		}
	}

	doc := Document{KeyInstructions: list}
	for _, key := range CategoryKeys {
		doc[key] = map[string]any{}
	}
	return doc
}

// Without returns a shallow copy of d with the given keys removed.
func (d Document) Without(keys ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
