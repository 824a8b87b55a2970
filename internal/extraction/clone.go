package extraction

import "bytes"

// Clone returns a deep structural copy of the tree. Edits against the clone
// can never reach back into the original, which is what lets a review
// session hand out a working copy while keeping its baseline intact.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{
		names:    make([]string, len(t.names)),
		sections: make(map[string]*Section, len(t.sections)),
	}
	copy(out.names, t.names)
	for name, sec := range t.sections {
		out.sections[name] = sec.clone()
	}
	return out
}

func (s *Section) clone() *Section {
	out := &Section{Name: s.Name, Kind: s.Kind}
	switch s.Kind {
	case KindList:
		out.List = make([]ListItem, len(s.List))
		for i, item := range s.List {
			switch {
			case item.Record != nil:
				out.List[i] = ListItem{Record: item.Record.Clone()}
			case item.Leaf != nil:
				out.List[i] = ListItem{Leaf: &LeafField{
					Value:      copyStr(item.Leaf.Value),
					SourcePage: copyInt(item.Leaf.SourcePage),
				}}
			default:
				out.List[i] = ListItem{Raw: cloneRaw(item.Raw)}
			}
		}
	case KindRecord:
		out.Record = s.Record.Clone()
	default:
		out.Scalar = s.Scalar.clone()
	}
	return out
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]*FieldValue, len(r.values)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.values {
		out.values[k] = v.clone()
	}
	return out
}

func (v *FieldValue) clone() *FieldValue {
	if v == nil {
		return nil
	}
	if v.Leaf != nil {
		return &FieldValue{Leaf: &LeafField{
			Value:      copyStr(v.Leaf.Value),
			SourcePage: copyInt(v.Leaf.SourcePage),
		}}
	}
	return &FieldValue{Raw: cloneRaw(v.Raw)}
}

func cloneRaw(raw []byte) []byte {
	if raw == nil {
		return nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// Equal reports deep structural equality, including section and field order.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.names) != len(other.names) {
		return false
	}
	for i, name := range t.names {
		if other.names[i] != name {
			return false
		}
		if !t.sections[name].equal(other.sections[name]) {
			return false
		}
	}
	return true
}

func (s *Section) equal(other *Section) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Name != other.Name || s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case KindList:
		if len(s.List) != len(other.List) {
			return false
		}
		for i := range s.List {
			a, b := s.List[i], other.List[i]
			if (a.Record == nil) != (b.Record == nil) || (a.Leaf == nil) != (b.Leaf == nil) {
				return false
			}
			switch {
			case a.Record != nil:
				if !a.Record.equal(b.Record) {
					return false
				}
			case a.Leaf != nil:
				if !eqStr(a.Leaf.Value, b.Leaf.Value) || !eqInt(a.Leaf.SourcePage, b.Leaf.SourcePage) {
					return false
				}
			default:
				if !bytes.Equal(a.Raw, b.Raw) {
					return false
				}
			}
		}
		return true
	case KindRecord:
		return s.Record.equal(other.Record)
	default:
		return s.Scalar.equal(other.Scalar)
	}
}

func (r *Record) equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		if !r.values[k].equal(other.values[k]) {
			return false
		}
	}
	return true
}

func (v *FieldValue) equal(other *FieldValue) bool {
	if v == nil || other == nil {
		return v == other
	}
	if (v.Leaf == nil) != (other.Leaf == nil) {
		return false
	}
	if v.Leaf != nil {
		return eqStr(v.Leaf.Value, other.Leaf.Value) && eqInt(v.Leaf.SourcePage, other.Leaf.SourcePage)
	}
	return bytes.Equal(v.Raw, other.Raw)
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
