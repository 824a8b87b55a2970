// Package pdfpage reads page geometry out of PDF documents: rendered page
// dimensions for the viewer and word-level bounding boxes for highlight
// placement.
package pdfpage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docreview/internal/domain"
	"docreview/internal/overlay"
)

const defaultTextHeight = 12.0

// Reader implements page geometry lookups over raw PDF bytes.
type Reader struct{}

// NewReader creates a new geometry reader.
func NewReader() *Reader {
	return &Reader{}
}

// PageDims returns the pixel dimensions of one page scaled by the given
// render scale. Page numbers are 1-based.
func (r *Reader) PageDims(doc []byte, pageNumber int, scale float64) (*domain.PageDims, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %v", domain.ErrInvalidScale, scale)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(doc), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}
	if pageNumber < 1 || pageNumber > ctx.PageCount {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, pageNumber, ctx.PageCount)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if pageNumber > len(dims) {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, pageNumber, len(dims))
	}

	d := dims[pageNumber-1]
	return &domain.PageDims{
		WidthPx:  d.Width * scale,
		HeightPx: d.Height * scale,
	}, nil
}

// word is one text fragment with its page-space box in top-left origin
// coordinates.
type word struct {
	text string
	box  overlay.Highlight
}

// FindPhrase locates every occurrence of phrase on the page and returns one
// highlight per occurrence, each the union box of the matched words.
// Coordinates are unscaled page units with a top-left origin. Page numbers
// are 1-based.
func (r *Reader) FindPhrase(doc []byte, pageNumber int, phrase string) ([]overlay.Highlight, error) {
	tokens := strings.Fields(strings.ToLower(phrase))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty phrase", domain.ErrTextNotFound)
	}

	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, pageNumber, reader.NumPage())
	}

	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, pageNumber, reader.NumPage())
	}

	pageHeight := pageMediaHeight(page)
	words := collectWords(page, pageHeight)

	matches := matchPhrase(words, tokens)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q on page %d", domain.ErrTextNotFound, phrase, pageNumber)
	}
	return matches, nil
}

// pageMediaHeight reads the page's MediaBox height, used to flip text
// coordinates from PDF's bottom-left origin to top-left.
func pageMediaHeight(page pdf.Page) float64 {
	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Len() == 4 {
		y0 := mediaBox.Index(1).Float64()
		y1 := mediaBox.Index(3).Float64()
		return y1 - y0
	}
	// Letter-size fallback when the MediaBox is missing or malformed.
	return 792.0
}

// collectWords groups the page's positioned text fragments into words. The
// extractor emits fragments that may be single characters or whole runs, so
// adjacent fragments on one baseline are merged until a space or a gap.
func collectWords(page pdf.Page, pageHeight float64) []word {
	content := page.Content()

	var words []word
	var cur *word
	var curEndX float64

	flush := func() {
		if cur != nil && strings.TrimSpace(cur.text) != "" {
			w := *cur
			w.text = strings.ToLower(strings.TrimSpace(w.text))
			words = append(words, w)
		}
		cur = nil
	}

	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}

		height := t.FontSize
		if height == 0 {
			height = defaultTextHeight
		}
		// Flip to top-left origin.
		top := pageHeight - t.Y - height
		box := overlay.Highlight{
			X0: t.X,
			Y0: top,
			X1: t.X + t.W,
			Y1: top + height,
		}

		sameLine := cur != nil && abs(cur.box.Y0-box.Y0) < height/2
		gap := height * 0.3
		adjacent := sameLine && box.X0-curEndX <= gap

		if adjacent {
			cur.text += t.S
			cur.box = overlay.Union([]overlay.Highlight{cur.box, box})
		} else {
			flush()
			w := word{text: t.S, box: box}
			cur = &w
		}
		curEndX = box.X1
	}
	flush()

	return words
}

// matchPhrase scans the word sequence for consecutive runs matching the
// phrase tokens. A single multi-word token may also match a run of words
// whose concatenation equals it, which absorbs extractor fragments split
// mid-word.
func matchPhrase(words []word, tokens []string) []overlay.Highlight {
	var matches []overlay.Highlight

	for i := 0; i < len(words); i++ {
		boxes, nextIdx := matchTokensAt(words, i, tokens)
		if boxes == nil {
			continue
		}
		matches = append(matches, overlay.Union(boxes))
		i = nextIdx - 1
	}
	return matches
}

// matchTokensAt tries to match all tokens starting at word index i. On
// success it returns the matched word boxes and the index just past the
// match.
func matchTokensAt(words []word, i int, tokens []string) ([]overlay.Highlight, int) {
	var boxes []overlay.Highlight
	idx := i

	for _, tok := range tokens {
		if idx >= len(words) {
			return nil, 0
		}
		if words[idx].text == tok {
			boxes = append(boxes, words[idx].box)
			idx++
			continue
		}
		// A word split across fragments: allow two adjacent words whose
		// concatenation equals the token.
		if idx+1 < len(words) && words[idx].text+words[idx+1].text == tok {
			boxes = append(boxes, words[idx].box, words[idx+1].box)
			idx += 2
			continue
		}
		return nil, 0
	}
	return boxes, idx
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
