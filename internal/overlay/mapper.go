// Package overlay projects document page-space bounding boxes onto a
// rendered page. The mapping is a pure linear transform: it holds no state,
// performs no clamping, and may be called freely from the rendering path.
package overlay

// Highlight is a rectangle in document page-space: origin top-left, units
// are unscaled page points. Degenerate rectangles of zero width or height
// are legal and render as a line or point.
type Highlight struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Rect is an overlay-space rectangle, positioned over the rendered page.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Map scales a highlight into overlay space. Rectangles may extend outside
// the rendered page when provenance data is stale; visual clipping is the
// caller's concern. Degenerate rectangles are emitted, never dropped:
// an absent box for a present provenance marker would read as missing
// provenance.
func Map(h Highlight, scale float64) Rect {
	return Rect{
		Left:   h.X0 * scale,
		Top:    h.Y0 * scale,
		Width:  (h.X1 - h.X0) * scale,
		Height: (h.Y1 - h.Y0) * scale,
	}
}

// MapAll maps every highlight, preserving order and count.
func MapAll(hs []Highlight, scale float64) []Rect {
	out := make([]Rect, len(hs))
	for i, h := range hs {
		out[i] = Map(h, scale)
	}
	return out
}

// Union returns the bounding box of the given highlights. The extraction
// backend reports one box per word; the overlay draws a single box around
// the whole phrase.
func Union(hs []Highlight) Highlight {
	if len(hs) == 0 {
		return Highlight{}
	}
	out := hs[0]
	for _, h := range hs[1:] {
		if h.X0 < out.X0 {
			out.X0 = h.X0
		}
		if h.Y0 < out.Y0 {
			out.Y0 = h.Y0
		}
		if h.X1 > out.X1 {
			out.X1 = h.X1
		}
		if h.Y1 > out.Y1 {
			out.Y1 = h.Y1
		}
	}
	return out
}
