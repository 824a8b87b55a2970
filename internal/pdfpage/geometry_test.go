package pdfpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
	"docreview/internal/overlay"
)

func box(x0, y0, x1, y1 float64) overlay.Highlight {
	return overlay.Highlight{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func TestMatchPhrase_SingleWord(t *testing.T) {
	words := []word{
		{text: "governing", box: box(10, 100, 60, 112)},
		{text: "law", box: box(65, 100, 85, 112)},
	}

	matches := matchPhrase(words, []string{"law"})
	require.Len(t, matches, 1)
	assert.Equal(t, box(65, 100, 85, 112), matches[0])
}

func TestMatchPhrase_MultiWordUnion(t *testing.T) {
	words := []word{
		{text: "state", box: box(0, 100, 30, 112)},
		{text: "of", box: box(35, 100, 45, 112)},
		{text: "new", box: box(50, 100, 75, 112)},
		{text: "york", box: box(80, 100, 110, 112)},
	}

	matches := matchPhrase(words, []string{"new", "york"})
	require.Len(t, matches, 1)
	assert.Equal(t, box(50, 100, 110, 112), matches[0])
}

func TestMatchPhrase_SplitWordFragments(t *testing.T) {
	// The extractor sometimes splits a word into adjacent fragments.
	words := []word{
		{text: "dela", box: box(10, 50, 35, 62)},
		{text: "ware", box: box(35, 50, 60, 62)},
	}

	matches := matchPhrase(words, []string{"delaware"})
	require.Len(t, matches, 1)
	assert.Equal(t, box(10, 50, 60, 62), matches[0])
}

func TestMatchPhrase_MultipleOccurrences(t *testing.T) {
	words := []word{
		{text: "borrower", box: box(10, 100, 60, 112)},
		{text: "pays", box: box(65, 100, 90, 112)},
		{text: "borrower", box: box(10, 200, 60, 212)},
	}

	matches := matchPhrase(words, []string{"borrower"})
	assert.Len(t, matches, 2)
}

func TestMatchPhrase_NoMatch(t *testing.T) {
	words := []word{
		{text: "lender", box: box(10, 100, 60, 112)},
	}

	assert.Empty(t, matchPhrase(words, []string{"borrower"}))
	assert.Empty(t, matchPhrase(nil, []string{"borrower"}))
}

func TestMatchPhrase_PartialPhraseDoesNotMatch(t *testing.T) {
	words := []word{
		{text: "new", box: box(10, 100, 30, 112)},
		{text: "jersey", box: box(35, 100, 70, 112)},
	}

	assert.Empty(t, matchPhrase(words, []string{"new", "york"}))
}

func TestPageDims_InvalidScale(t *testing.T) {
	r := NewReader()
	_, err := r.PageDims([]byte("%PDF-1.4"), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)

	_, err = r.PageDims([]byte("%PDF-1.4"), 1, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)
}

func TestFindPhrase_EmptyPhrase(t *testing.T) {
	r := NewReader()
	_, err := r.FindPhrase([]byte("%PDF-1.4"), 1, "   ")
	assert.ErrorIs(t, err, domain.ErrTextNotFound)
}
