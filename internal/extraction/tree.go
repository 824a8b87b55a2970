// Package extraction models the semi-structured result of document field
// extraction: a tree of named sections whose leaves carry a value and its
// source-page provenance. Section names and field shapes are owned by the
// extraction backend and may grow without notice, so decoding never rejects
// an unknown shape.
package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// LeafField is the smallest addressable value in the tree. SourcePage is the
// page the value was read from; it is nil for empty or user-added fields.
type LeafField struct {
	Value      *string
	SourcePage *int
}

// MarshalJSON writes the wire shape {"value": ..., "page_number": ...}.
func (l *LeafField) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value      *string `json:"value"`
		SourcePage *int    `json:"page_number"`
	}{l.Value, l.SourcePage})
}

// FieldValue is a single field's runtime value: either a decoded LeafField
// or, for shapes the backend has not promised us, the raw JSON as received.
type FieldValue struct {
	Leaf *LeafField
	Raw  json.RawMessage
}

// IsLeaf reports whether the value carries provenance-tagged leaf shape.
func (v *FieldValue) IsLeaf() bool {
	return v != nil && v.Leaf != nil
}

// LeafValue builds a leaf-shaped field value.
func LeafValue(value *string, sourcePage *int) *FieldValue {
	return &FieldValue{Leaf: &LeafField{Value: value, SourcePage: sourcePage}}
}

// RawValue builds an opaque field value from raw JSON.
func RawValue(raw json.RawMessage) *FieldValue {
	return &FieldValue{Raw: raw}
}

// Str returns a pointer to s, for building leaf values inline.
func Str(s string) *string { return &s }

// Record is an ordered mapping of field name to value. Insertion order is
// display order and is never re-sorted.
type Record struct {
	keys   []string
	values map[string]*FieldValue
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]*FieldValue)}
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.keys) }

// FieldNames returns the field names in insertion order.
func (r *Record) FieldNames() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Field returns the value for name, if present.
func (r *Record) Field(name string) (*FieldValue, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set stores a value under name, appending the name to the field order if it
// is new.
func (r *Record) Set(name string, v *FieldValue) {
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

// MarshalJSON writes the record's fields in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalFieldValue(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ListItem is one element of a list section: a record in the usual case, a
// leaf when the backend sent a bare {"value", "page_number"} object, or the
// raw element when it is not an object at all. Exactly one field is set.
type ListItem struct {
	Record *Record
	Leaf   *LeafField
	Raw    json.RawMessage
}

// Section is a named branch of the tree, classified once at decode time into
// exactly one of the three shapes. Only the payload matching Kind is set.
type Section struct {
	Name   string
	Kind   Kind
	Scalar *FieldValue
	Record *Record
	List   []ListItem
}

// Tree is the full extraction result: an ordered mapping of section name to
// section. Section iteration order matches the producer's order.
type Tree struct {
	names    []string
	sections map[string]*Section
}

func newTree() *Tree {
	return &Tree{sections: make(map[string]*Section)}
}

// Len returns the number of sections.
func (t *Tree) Len() int { return len(t.names) }

// SectionNames returns the section names in producer order.
func (t *Tree) SectionNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Section returns the named section, or nil if absent.
func (t *Tree) Section(name string) *Section {
	return t.sections[name]
}

// Parse decodes a raw extraction result. It fails only on malformed JSON;
// any well-formed value is representable. A null or non-object document
// decodes to an empty tree.
func Parse(raw []byte) (*Tree, error) {
	t := newTree()
	if len(bytes.TrimSpace(raw)) == 0 {
		return t, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse extraction tree: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		// Tolerate a non-object document rather than failing.
		return t, nil
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse extraction tree: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse extraction tree: unexpected key token %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parse extraction tree: section %q: %w", name, err)
		}
		sec, err := decodeSection(name, value)
		if err != nil {
			return nil, err
		}
		if _, exists := t.sections[name]; !exists {
			t.names = append(t.names, name)
		}
		t.sections[name] = sec
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse extraction tree: %w", err)
	}
	return t, nil
}

// decodeSection classifies a raw section value and builds the matching
// tagged payload.
func decodeSection(name string, raw json.RawMessage) (*Section, error) {
	sec := &Section{Name: name, Kind: Classify(raw)}
	switch sec.Kind {
	case KindList:
		items, err := decodeList(raw)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		sec.List = items
	case KindRecord:
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		sec.Record = rec
	default:
		sec.Scalar = decodeFieldValue(raw)
	}
	return sec, nil
}

func decodeList(raw json.RawMessage) ([]ListItem, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var items []ListItem
	for dec.More() {
		var elem json.RawMessage
		if err := dec.Decode(&elem); err != nil {
			return nil, err
		}
		switch {
		case firstByte(elem) == '{' && isLeafShaped(elem):
			items = append(items, ListItem{Leaf: decodeLeaf(elem)})
		case firstByte(elem) == '{':
			rec, err := decodeRecord(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, ListItem{Record: rec})
		default:
			items = append(items, ListItem{Raw: elem})
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeRecord(raw json.RawMessage) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	rec := NewRecord()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		rec.Set(name, decodeFieldValue(value))
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeFieldValue turns raw JSON into a LeafField when it carries the
// {"value", "page_number"} shape, and keeps it opaque otherwise.
func decodeFieldValue(raw json.RawMessage) *FieldValue {
	if isLeafShaped(raw) {
		return &FieldValue{Leaf: decodeLeaf(raw)}
	}
	return &FieldValue{Raw: raw}
}

// decodeLeaf decodes a leaf-shaped object. A non-string value is coerced to
// its JSON text, matching how the extraction backend normalizes fields; a
// non-integer page number is dropped.
func decodeLeaf(raw json.RawMessage) *LeafField {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return &LeafField{}
	}
	leaf := &LeafField{}
	if v, ok := obj["value"]; ok && !isJSONNull(v) {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			s = string(bytes.TrimSpace(v))
		}
		leaf.Value = &s
	}
	if p, ok := obj["page_number"]; ok && !isJSONNull(p) {
		var n json.Number
		if err := json.Unmarshal(p, &n); err == nil {
			if i, err := strconv.Atoi(n.String()); err == nil {
				leaf.SourcePage = &i
			}
		}
	}
	return leaf
}

// MarshalJSON writes sections in producer order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		sec, err := marshalSection(t.sections[name])
		if err != nil {
			return nil, err
		}
		buf.Write(sec)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalSection(s *Section) ([]byte, error) {
	switch s.Kind {
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range s.List {
			if i > 0 {
				buf.WriteByte(',')
			}
			switch {
			case item.Record != nil:
				b, err := item.Record.MarshalJSON()
				if err != nil {
					return nil, err
				}
				buf.Write(b)
			case item.Leaf != nil:
				b, err := item.Leaf.MarshalJSON()
				if err != nil {
					return nil, err
				}
				buf.Write(b)
			default:
				buf.Write(item.Raw)
			}
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindRecord:
		return s.Record.MarshalJSON()
	default:
		return marshalFieldValue(s.Scalar)
	}
}

func marshalFieldValue(v *FieldValue) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	if v.Leaf != nil {
		return v.Leaf.MarshalJSON()
	}
	if len(v.Raw) == 0 {
		return []byte("null"), nil
	}
	return v.Raw, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
