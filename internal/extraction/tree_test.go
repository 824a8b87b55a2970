package extraction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResult = `{
	"dates": {
		"agreement_date": {"value": "27 November 2023", "page_number": 1},
		"maturity_date": {"value": null, "page_number": null}
	},
	"general": {
		"borrower": {"value": "Acme Holdings B.V.", "page_number": 2},
		"agent": {"value": "Big Bank plc", "page_number": 2}
	},
	"parties": [
		{"name": {"value": "Acme Holdings B.V.", "page_number": 2}, "role": {"value": "Borrower", "page_number": 2}},
		{"name": {"value": "Big Bank plc", "page_number": 2}, "role": {"value": "Agent", "page_number": 2}}
	],
	"governing_law": {"value": "English law", "page_number": 74}
}`

func TestParse_PreservesSectionOrder(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	assert.Equal(t, []string{"dates", "general", "parties", "governing_law"}, tree.SectionNames())
	assert.Equal(t, 4, tree.Len())
}

func TestParse_PreservesFieldOrder(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	general := tree.Section("general")
	require.NotNil(t, general)
	require.Equal(t, KindRecord, general.Kind)
	assert.Equal(t, []string{"borrower", "agent"}, general.Record.FieldNames())
}

func TestParse_LeafFields(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	dates := tree.Section("dates")
	agreement, ok := dates.Record.Field("agreement_date")
	require.True(t, ok)
	require.True(t, agreement.IsLeaf())
	require.NotNil(t, agreement.Leaf.Value)
	assert.Equal(t, "27 November 2023", *agreement.Leaf.Value)
	require.NotNil(t, agreement.Leaf.SourcePage)
	assert.Equal(t, 1, *agreement.Leaf.SourcePage)

	maturity, ok := dates.Record.Field("maturity_date")
	require.True(t, ok)
	require.True(t, maturity.IsLeaf())
	assert.Nil(t, maturity.Leaf.Value)
	assert.Nil(t, maturity.Leaf.SourcePage)
}

func TestParse_LeafShapedSectionIsScalar(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	law := tree.Section("governing_law")
	require.Equal(t, KindScalar, law.Kind)
	require.True(t, law.Scalar.IsLeaf())
	assert.Equal(t, "English law", *law.Scalar.Leaf.Value)
	assert.Equal(t, 74, *law.Scalar.Leaf.SourcePage)
}

func TestParse_ListOfRecords(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	parties := tree.Section("parties")
	require.Equal(t, KindList, parties.Kind)
	require.Len(t, parties.List, 2)
	require.NotNil(t, parties.List[1].Record)

	role, ok := parties.List[1].Record.Field("role")
	require.True(t, ok)
	assert.Equal(t, "Agent", *role.Leaf.Value)
}

func TestParse_ToleratesUnknownShapes(t *testing.T) {
	raw := `{
		"notes": "free text",
		"score": 0.92,
		"nothing": null,
		"nested": {"inner": {"deep": [1, 2, 3]}},
		"mixed_list": [42, {"a": {"value": "x", "page_number": 1}}, "plain"]
	}`
	tree, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, 5, tree.Len())

	assert.Equal(t, KindScalar, tree.Section("notes").Kind)
	assert.Equal(t, KindScalar, tree.Section("score").Kind)
	assert.Equal(t, KindScalar, tree.Section("nothing").Kind)
	assert.Equal(t, KindRecord, tree.Section("nested").Kind)

	mixed := tree.Section("mixed_list")
	require.Equal(t, KindList, mixed.Kind)
	require.Len(t, mixed.List, 3)
	assert.Nil(t, mixed.List[0].Record)
	assert.NotNil(t, mixed.List[1].Record)
	assert.Nil(t, mixed.List[2].Record)
}

func TestParse_NullAndNonObjectDocuments(t *testing.T) {
	for _, raw := range []string{"", "null", `"just a string"`, "[1,2,3]"} {
		tree, err := Parse([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, 0, tree.Len(), raw)
	}
}

func TestParse_MalformedJSONFails(t *testing.T) {
	_, err := Parse([]byte(`{"dates": {`))
	assert.Error(t, err)
}

func TestParse_CoercesNonStringLeafValues(t *testing.T) {
	raw := `{"misc": {"count": {"value": 3, "page_number": 5}}}`
	tree, err := Parse([]byte(raw))
	require.NoError(t, err)

	count, ok := tree.Section("misc").Record.Field("count")
	require.True(t, ok)
	require.True(t, count.IsLeaf())
	assert.Equal(t, "3", *count.Leaf.Value)
	assert.Equal(t, 5, *count.Leaf.SourcePage)
}

func TestParse_BareLeafListElements(t *testing.T) {
	raw := `{"defined_terms": [{"value": "Margin", "page_number": 12}, {"value": "Utilisation", "page_number": 13}]}`
	tree, err := Parse([]byte(raw))
	require.NoError(t, err)

	sec := tree.Section("defined_terms")
	require.Equal(t, KindList, sec.Kind)
	require.Len(t, sec.List, 2)
	require.NotNil(t, sec.List[0].Leaf)
	assert.Nil(t, sec.List[0].Record)
	assert.Equal(t, "Margin", *sec.List[0].Leaf.Value)
	assert.Equal(t, 12, *sec.List[0].Leaf.SourcePage)

	out, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestMarshal_RoundTripsOrder(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	out, err := json.Marshal(tree)
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, tree.SectionNames(), again.SectionNames())
	assert.True(t, tree.Equal(again))
}

func TestClone_IsDeepAndEqual(t *testing.T) {
	tree, err := Parse([]byte(sampleResult))
	require.NoError(t, err)

	clone := tree.Clone()
	require.True(t, tree.Equal(clone))

	// Mutating the clone through the patch engine must not disturb the
	// original.
	edited, err := SetField(clone, "general", Path{Field: "borrower"}, Str("Someone Else"))
	require.NoError(t, err)
	assert.False(t, tree.Equal(edited))
	assert.True(t, tree.Equal(clone))
}
