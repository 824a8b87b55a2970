package extraction

import (
	"encoding/json"
	"fmt"

	"docreview/internal/domain"
)

// Path addresses one leaf inside a section: empty for a scalar section, a
// field name for a record section, an index plus field name for a record
// element of a list section, or an index alone for a bare leaf element. The
// caller is expected to build paths consistent with the section's
// classified Kind.
type Path struct {
	Index *int
	Field string
}

// Idx returns a pointer to i, for building list paths inline.
func Idx(i int) *int { return &i }

// SetField returns a new tree with the leaf addressed by (section, path)
// replaced by text, preserving the leaf's source-page provenance. The input
// tree is never mutated: every ancestor of the edited leaf is shallow-copied
// and every untouched subtree is shared by reference, so unchanged sections
// compare reference-equal across the edit.
func SetField(t *Tree, section string, path Path, text *string) (*Tree, error) {
	return patchLeaf(t, section, path, func(old *FieldValue) *FieldValue {
		if old != nil && old.Leaf != nil {
			return &FieldValue{Leaf: &LeafField{Value: text, SourcePage: old.Leaf.SourcePage}}
		}
		if old != nil && old.Raw != nil {
			// The field held an opaque value; the edit replaces it with the
			// plain text the user typed.
			raw, _ := json.Marshal(text)
			return &FieldValue{Raw: raw}
		}
		// User-added field: a leaf without provenance.
		return &FieldValue{Leaf: &LeafField{Value: text}}
	})
}

// SetLeaf returns a new tree with the addressed leaf fully replaced,
// provenance included. Same copy-on-write discipline as SetField.
func SetLeaf(t *Tree, section string, path Path, leaf *LeafField) (*Tree, error) {
	replacement := &LeafField{}
	if leaf != nil {
		replacement.Value = copyStr(leaf.Value)
		replacement.SourcePage = copyInt(leaf.SourcePage)
	}
	return patchLeaf(t, section, path, func(*FieldValue) *FieldValue {
		return &FieldValue{Leaf: replacement}
	})
}

// AppendRecord returns a new tree with rec appended to the end of a list
// section. The record is deep-copied so later caller mutations cannot reach
// into the returned tree.
func AppendRecord(t *Tree, section string, rec *Record) (*Tree, error) {
	return replaceSection(t, section, func(sec *Section) (*Section, error) {
		if sec.Kind != KindList {
			return nil, fmt.Errorf("%w: appendRecord on %s section %q", domain.ErrShapeMismatch, sec.Kind, section)
		}
		items := make([]ListItem, len(sec.List)+1)
		copy(items, sec.List)
		items[len(sec.List)] = ListItem{Record: rec.Clone()}
		return &Section{Name: sec.Name, Kind: KindList, List: items}, nil
	})
}

// RemoveRecord returns a new tree with the record at index removed from a
// list section. Remaining records keep their order.
func RemoveRecord(t *Tree, section string, index int) (*Tree, error) {
	return replaceSection(t, section, func(sec *Section) (*Section, error) {
		if sec.Kind != KindList {
			return nil, fmt.Errorf("%w: removeRecord on %s section %q", domain.ErrShapeMismatch, sec.Kind, section)
		}
		if index < 0 || index >= len(sec.List) {
			return nil, fmt.Errorf("%w: index %d in section %q of length %d", domain.ErrOutOfRange, index, section, len(sec.List))
		}
		items := make([]ListItem, 0, len(sec.List)-1)
		items = append(items, sec.List[:index]...)
		items = append(items, sec.List[index+1:]...)
		return &Section{Name: sec.Name, Kind: KindList, List: items}, nil
	})
}

// patchLeaf routes a leaf replacement through the section shape addressed by
// path. replace receives the current value (nil when the field is new) and
// returns its successor.
func patchLeaf(t *Tree, section string, path Path, replace func(*FieldValue) *FieldValue) (*Tree, error) {
	return replaceSection(t, section, func(sec *Section) (*Section, error) {
		switch sec.Kind {
		case KindScalar:
			if path.Index != nil || path.Field != "" {
				return nil, fmt.Errorf("%w: non-empty path into scalar section %q", domain.ErrShapeMismatch, section)
			}
			return &Section{Name: sec.Name, Kind: KindScalar, Scalar: replace(sec.Scalar)}, nil

		case KindRecord:
			if path.Index != nil || path.Field == "" {
				return nil, fmt.Errorf("%w: record section %q requires a field name path", domain.ErrShapeMismatch, section)
			}
			return &Section{Name: sec.Name, Kind: KindRecord, Record: recordWith(sec.Record, path.Field, replace)}, nil

		case KindList:
			if path.Index == nil {
				return nil, fmt.Errorf("%w: list section %q requires an index path", domain.ErrShapeMismatch, section)
			}
			i := *path.Index
			if i < 0 || i >= len(sec.List) {
				return nil, fmt.Errorf("%w: index %d in section %q of length %d", domain.ErrOutOfRange, i, section, len(sec.List))
			}
			items := make([]ListItem, len(sec.List))
			copy(items, sec.List)
			switch {
			case sec.List[i].Record != nil:
				if path.Field == "" {
					return nil, fmt.Errorf("%w: element %d of section %q requires a field name path", domain.ErrShapeMismatch, i, section)
				}
				items[i] = ListItem{Record: recordWith(sec.List[i].Record, path.Field, replace)}
			case sec.List[i].Leaf != nil:
				// A bare leaf element is addressed by index alone.
				if path.Field != "" {
					return nil, fmt.Errorf("%w: element %d of section %q is a leaf, not a record", domain.ErrShapeMismatch, i, section)
				}
				items[i] = leafItem(replace(&FieldValue{Leaf: sec.List[i].Leaf}))
			default:
				return nil, fmt.Errorf("%w: element %d of section %q is not a record", domain.ErrShapeMismatch, i, section)
			}
			return &Section{Name: sec.Name, Kind: KindList, List: items}, nil
		}
		return nil, fmt.Errorf("%w: section %q has no shape", domain.ErrShapeMismatch, section)
	})
}

// leafItem folds a replacement value back into a list element.
func leafItem(v *FieldValue) ListItem {
	if v == nil {
		return ListItem{Raw: json.RawMessage("null")}
	}
	if v.Leaf != nil {
		return ListItem{Leaf: v.Leaf}
	}
	return ListItem{Raw: v.Raw}
}

// recordWith shallow-copies rec and swaps in the replacement for field,
// appending the field when it is new. Sibling values are shared by
// reference.
func recordWith(rec *Record, field string, replace func(*FieldValue) *FieldValue) *Record {
	out := &Record{
		keys:   rec.keys,
		values: make(map[string]*FieldValue, len(rec.values)+1),
	}
	for k, v := range rec.values {
		out.values[k] = v
	}
	old := rec.values[field]
	if old == nil {
		keys := make([]string, len(rec.keys), len(rec.keys)+1)
		copy(keys, rec.keys)
		out.keys = append(keys, field)
	}
	out.values[field] = replace(old)
	return out
}

// replaceSection shallow-copies the tree root and swaps in the section
// produced by build. All sibling sections are shared by reference.
func replaceSection(t *Tree, section string, build func(*Section) (*Section, error)) (*Tree, error) {
	sec, ok := t.sections[section]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSection, section)
	}
	next, err := build(sec)
	if err != nil {
		return nil, err
	}
	out := &Tree{
		names:    t.names,
		sections: make(map[string]*Section, len(t.sections)),
	}
	for k, v := range t.sections {
		out.sections[k] = v
	}
	out.sections[section] = next
	return out, nil
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
