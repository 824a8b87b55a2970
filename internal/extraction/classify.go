package extraction

import (
	"bytes"
	"encoding/json"
)

// Kind is the rendering/editing strategy for a section. Every legal JSON
// value maps to exactly one Kind; there is no unclassifiable shape.
type Kind string

const (
	KindScalar Kind = "scalar"
	KindRecord Kind = "record"
	KindList   Kind = "list"
)

// Classify applies the shape decision rule to a raw section value, first
// match wins:
//
//  1. an ordered sequence is a list;
//  2. a non-null keyed structure is a record, except the provenance leaf
//     shape {"value", "page_number"}, which the model decodes into a
//     LeafField and therefore classifies as a scalar;
//  3. everything else (primitives, null, leaves) is a scalar.
//
// The verdict is computed once at decode time and stored on the Section; it
// is never re-derived at render or edit sites.
func Classify(raw json.RawMessage) Kind {
	switch firstByte(raw) {
	case '[':
		return KindList
	case '{':
		if isLeafShaped(raw) {
			return KindScalar
		}
		return KindRecord
	default:
		return KindScalar
	}
}

// isLeafShaped reports whether raw is an object carrying the provenance leaf
// shape: it has a "value" key and no keys beyond "value" and "page_number".
func isLeafShaped(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return false
	}
	if _, ok := obj["value"]; !ok {
		return false
	}
	for k := range obj {
		if k != "value" && k != "page_number" {
			return false
		}
	}
	return true
}
