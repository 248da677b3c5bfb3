package compiler

import (
	"encoding/json"

	"github.com/roach88/plutusladder/internal/ir"
)

// ValidateStructure checks that v is a LadderCore IR document with every
// required section present and of the right basic shape.
//
// Keys are scanned in ir.SchemaKeys order and the first defect wins, so the
// diagnostic is deterministic. A value that is not an object has no keys and
// reports instructions as missing. A null section counts as present and empty.
//
// On success the returned Document shares storage with v; nothing is copied
// or reordered.
func ValidateStructure(v any) (ir.Document, error) {
	doc, ok := asDocument(v)
	if !ok {
		return nil, &MissingKeyError{Key: ir.SchemaKeys[0]}
	}

	for _, key := range ir.SchemaKeys {
		if err := checkSection(doc, key); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// checkSection validates one top-level key of doc.
func checkSection(doc ir.Document, key string) error {
	val, present := doc[key]
	if !present {
		return &MissingKeyError{Key: key}
	}
	if val == nil {
		return nil
	}

	if key == ir.KeyInstructions {
		if _, ok := val.([]any); !ok {
			return &SectionError{Key: key, Want: "sequence", Got: shapeName(val)}
		}
		return nil
	}

	if _, ok := asMapping(val); !ok {
		return &SectionError{Key: key, Want: "mapping", Got: shapeName(val)}
	}
	return nil
}

// asMapping reports whether v is a decoded object, accepting both the
// decoder's map type and an ir.Document built in code.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case ir.Document:
		return m, true
	default:
		return nil, false
	}
}

// asDocument views a decoded value as a document without copying it.
func asDocument(v any) (ir.Document, bool) {
	switch doc := v.(type) {
	case ir.Document:
		return doc, doc != nil
	case map[string]any:
		return ir.Document(doc), doc != nil
	default:
		return nil, false
	}
}

// shapeName describes a decoded value for diagnostics.
func shapeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int64, uint64, float64:
		return "number"
	case []any:
		return "sequence"
	case map[string]any, ir.Document:
		return "mapping"
	default:
		return "unsupported value"
	}
}
