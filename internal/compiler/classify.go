package compiler

// Kind classifies an instruction by the ladder-logic category it belongs to.
type Kind string

// Instruction kinds.
const (
	KindInput         Kind = "input"
	KindOutput        Kind = "output"
	KindTimer         Kind = "timer"
	KindCounter       Kind = "counter"
	KindMath          Kind = "math"
	KindComparator    Kind = "comparator"
	KindLatch         Kind = "latch"
	KindJump          Kind = "jump"
	KindFunctionBlock Kind = "function_block"
	KindOther         Kind = "other"
)

// Kinds lists every kind in reporting order.
var Kinds = []Kind{
	KindInput,
	KindOutput,
	KindTimer,
	KindCounter,
	KindMath,
	KindComparator,
	KindLatch,
	KindJump,
	KindFunctionBlock,
	KindOther,
}

// kindByLabel maps lower-cased instruction types, including common IEC 61131
// and Allen-Bradley mnemonics, to their kind.
var kindByLabel = map[string]Kind{
	// inputs / contacts
	"input": KindInput, "contact": KindInput, "contact_no": KindInput, "contact_nc": KindInput,
	"xic": KindInput, "xio": KindInput, "no": KindInput, "nc": KindInput,

	// outputs / coils
	"output": KindOutput, "coil": KindOutput, "ote": KindOutput, "otl": KindOutput, "otu": KindOutput,

	// timers
	"timer": KindTimer, "ton": KindTimer, "tof": KindTimer, "tp": KindTimer, "rto": KindTimer,

	// counters
	"counter": KindCounter, "ctu": KindCounter, "ctd": KindCounter, "ctud": KindCounter, "res": KindCounter,

	// math
	"math": KindMath, "math_operation": KindMath, "cpt": KindMath,
	"add": KindMath, "sub": KindMath, "mul": KindMath, "div": KindMath, "mod": KindMath,

	// comparators
	"comparator": KindComparator, "compare": KindComparator, "cmp": KindComparator,
	"equ": KindComparator, "neq": KindComparator, "grt": KindComparator, "geq": KindComparator,
	"les": KindComparator, "leq": KindComparator, "lim": KindComparator,
	"eq": KindComparator, "ne": KindComparator, "gt": KindComparator, "ge": KindComparator,
	"lt": KindComparator, "le": KindComparator,

	// set/reset latches
	"latch": KindLatch, "set": KindLatch, "reset": KindLatch, "set_reset": KindLatch,
	"set_reset_latch": KindLatch, "sr": KindLatch, "rs": KindLatch,

	// jumps
	"jump": KindJump, "jump_instruction": KindJump, "jmp": KindJump, "lbl": KindJump,
	"jsr": KindJump, "ret": KindJump,

	// function blocks
	"function_block": KindFunctionBlock, "fb": KindFunctionBlock, "call": KindFunctionBlock,
}

// Classify returns the kind for a lower-cased instruction label.
// Unknown labels are KindOther; classification never rejects an instruction.
func Classify(label string) Kind {
	if kind, ok := kindByLabel[label]; ok {
		return kind
	}
	return KindOther
}
