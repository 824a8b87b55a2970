package service

import (
	"context"
	"fmt"

	"docreview/internal/config"
	"docreview/internal/domain"
	"docreview/internal/overlay"
	"docreview/internal/port"
)

// PageView is one page's rendered dimensions at the requested scale.
type PageView struct {
	PageNumber int             `json:"page_number"`
	Scale      float64         `json:"scale"`
	Dims       domain.PageDims `json:"dims"`
}

// HighlightResult carries the overlay rectangles for one located phrase.
type HighlightResult struct {
	PageNumber int            `json:"page_number"`
	Scale      float64        `json:"scale"`
	Rects      []overlay.Rect `json:"rects"`
}

// HighlightService locates field text on document pages and maps the found
// boxes into the rendered overlay space.
type HighlightService interface {
	PageView(ctx context.Context, jobID string, pageNumber int, scale float64) (*PageView, error)
	Locate(ctx context.Context, jobID string, pageNumber int, phrase string, scale float64) (*HighlightResult, error)
}

type highlightService struct {
	index    port.JobIndexRepository
	storage  port.ObjectStorage
	geometry port.PageGeometry
	cfg      *config.PDFConfig
}

// NewHighlightService creates a new HighlightService implementation.
func NewHighlightService(
	index port.JobIndexRepository,
	storage port.ObjectStorage,
	geometry port.PageGeometry,
	cfg *config.PDFConfig,
) HighlightService {
	return &highlightService{
		index:    index,
		storage:  storage,
		geometry: geometry,
		cfg:      cfg,
	}
}

func (s *highlightService) resolveScale(scale float64) (float64, error) {
	if scale == 0 {
		return s.cfg.DefaultScale, nil
	}
	if scale < 0 || scale > s.cfg.MaxScale {
		return 0, fmt.Errorf("%w: scale %v", domain.ErrInvalidScale, scale)
	}
	return scale, nil
}

func (s *highlightService) document(ctx context.Context, jobID string) ([]byte, error) {
	rec, err := s.index.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.storage.Get(ctx, rec.S3Bucket, rec.S3Key)
}

func (s *highlightService) PageView(ctx context.Context, jobID string, pageNumber int, scale float64) (*PageView, error) {
	scale, err := s.resolveScale(scale)
	if err != nil {
		return nil, err
	}
	doc, err := s.document(ctx, jobID)
	if err != nil {
		return nil, err
	}
	dims, err := s.geometry.PageDims(doc, pageNumber, scale)
	if err != nil {
		return nil, err
	}
	return &PageView{
		PageNumber: pageNumber,
		Scale:      scale,
		Dims:       *dims,
	}, nil
}

// Locate finds every occurrence of phrase on the page and returns one
// overlay rectangle per occurrence, scaled to the rendered page.
func (s *highlightService) Locate(ctx context.Context, jobID string, pageNumber int, phrase string, scale float64) (*HighlightResult, error) {
	scale, err := s.resolveScale(scale)
	if err != nil {
		return nil, err
	}
	doc, err := s.document(ctx, jobID)
	if err != nil {
		return nil, err
	}
	boxes, err := s.geometry.FindPhrase(doc, pageNumber, phrase)
	if err != nil {
		return nil, err
	}
	return &HighlightResult{
		PageNumber: pageNumber,
		Scale:      scale,
		Rects:      overlay.MapAll(boxes, scale),
	}, nil
}
