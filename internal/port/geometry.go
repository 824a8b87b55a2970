package port

import (
	"docreview/internal/domain"
	"docreview/internal/overlay"
)

// PageGeometry abstracts the page rendering collaborator: given document
// bytes it reports rendered page dimensions at a scale, and locates a
// phrase's bounding boxes in unscaled page space (origin top-left).
type PageGeometry interface {
	PageDims(doc []byte, pageNumber int, scale float64) (*domain.PageDims, error)
	FindPhrase(doc []byte, pageNumber int, phrase string) ([]overlay.Highlight, error)
}
