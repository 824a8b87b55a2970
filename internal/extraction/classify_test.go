package extraction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_FirstMatchWins(t *testing.T) {
	cases := []struct {
		raw  string
		want Kind
	}{
		{`[]`, KindList},
		{`[{"a": 1}]`, KindList},
		{`{"borrower": {"value": "x", "page_number": 1}}`, KindRecord},
		{`{"anything": "goes"}`, KindRecord},
		{`{}`, KindRecord},
		{`{"value": "x", "page_number": 3}`, KindScalar},
		{`{"value": null}`, KindScalar},
		{`"plain string"`, KindScalar},
		{`42`, KindScalar},
		{`true`, KindScalar},
		{`null`, KindScalar},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(json.RawMessage(c.raw)), c.raw)
	}
}

// An object with a value key plus unexpected siblings is not a provenance
// leaf; it classifies as a record.
func TestClassify_LeafShapeIsStrict(t *testing.T) {
	assert.Equal(t, KindRecord, Classify(json.RawMessage(`{"value": "x", "page_number": 1, "extra": true}`)))
	assert.Equal(t, KindRecord, Classify(json.RawMessage(`{"page_number": 1}`)))
}

// Re-classifying the patch engine's output yields the same verdict: edits
// are shape-preserving.
func TestClassify_StableAcrossEdits(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	edited, err := SetField(tree, "dates", Path{Field: "agreement_date"}, Str("2024-01-01"))
	require.NoError(t, err)
	edited, err = SetField(edited, "governing_law", Path{}, Str("German law"))
	require.NoError(t, err)
	edited, err = SetField(edited, "parties", Path{Index: Idx(0), Field: "role"}, Str("Guarantor"))
	require.NoError(t, err)

	for _, name := range tree.SectionNames() {
		assert.Equal(t, tree.Section(name).Kind, edited.Section(name).Kind, name)
	}
}
