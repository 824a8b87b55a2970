package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/config"
	"docreview/internal/domain"
	"docreview/internal/overlay"
	"docreview/internal/service"
	"docreview/mocks"
)

func testPDFConfig() config.PDFConfig {
	return config.PDFConfig{DefaultScale: 1.5, MaxScale: 8.0}
}

func newHighlightService(
	index *mocks.MockJobIndexRepo,
	storage *mocks.MockObjectStorage,
	geometry *mocks.MockPageGeometry,
) service.HighlightService {
	cfg := testPDFConfig()
	return service.NewHighlightService(index, storage, geometry, &cfg)
}

func stubDocument(index *mocks.MockJobIndexRepo, storage *mocks.MockObjectStorage, jobID string, doc []byte) {
	index.On("GetByJobID", mock.Anything, jobID).Return(&domain.JobRecord{
		JobID:    jobID,
		S3Bucket: "test-bucket",
		S3Key:    "uploads/x/a.pdf",
	}, nil)
	storage.On("Get", mock.Anything, "test-bucket", "uploads/x/a.pdf").Return(doc, nil)
}

func TestHighlightService_PageView(t *testing.T) {
	index := new(mocks.MockJobIndexRepo)
	storage := new(mocks.MockObjectStorage)
	geometry := new(mocks.MockPageGeometry)
	svc := newHighlightService(index, storage, geometry)

	doc := []byte("%PDF-1.4")
	stubDocument(index, storage, "J1", doc)
	geometry.On("PageDims", doc, 2, 2.0).
		Return(&domain.PageDims{WidthPx: 1224, HeightPx: 1584}, nil)

	view, err := svc.PageView(context.Background(), "J1", 2, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 2, view.PageNumber)
	assert.Equal(t, 2.0, view.Scale)
	assert.Equal(t, 1224.0, view.Dims.WidthPx)
}

func TestHighlightService_PageView_DefaultScale(t *testing.T) {
	index := new(mocks.MockJobIndexRepo)
	storage := new(mocks.MockObjectStorage)
	geometry := new(mocks.MockPageGeometry)
	svc := newHighlightService(index, storage, geometry)

	doc := []byte("%PDF-1.4")
	stubDocument(index, storage, "J1", doc)
	geometry.On("PageDims", doc, 1, 1.5).
		Return(&domain.PageDims{WidthPx: 918, HeightPx: 1188}, nil)

	view, err := svc.PageView(context.Background(), "J1", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, view.Scale)
}

func TestHighlightService_PageView_ScaleOutOfRange(t *testing.T) {
	svc := newHighlightService(new(mocks.MockJobIndexRepo), new(mocks.MockObjectStorage), new(mocks.MockPageGeometry))

	_, err := svc.PageView(context.Background(), "J1", 1, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)
}

func TestHighlightService_Locate_MapsIntoOverlaySpace(t *testing.T) {
	index := new(mocks.MockJobIndexRepo)
	storage := new(mocks.MockObjectStorage)
	geometry := new(mocks.MockPageGeometry)
	svc := newHighlightService(index, storage, geometry)

	doc := []byte("%PDF-1.4")
	stubDocument(index, storage, "J1", doc)
	geometry.On("FindPhrase", doc, 3, "New York").Return([]overlay.Highlight{
		{X0: 10, Y0: 20, X1: 30, Y1: 50},
	}, nil)

	result, err := svc.Locate(context.Background(), "J1", 3, "New York", 2.0)
	require.NoError(t, err)
	require.Len(t, result.Rects, 1)
	assert.Equal(t, overlay.Rect{Left: 20, Top: 40, Width: 40, Height: 60}, result.Rects[0])
}

func TestHighlightService_Locate_TextNotFound(t *testing.T) {
	index := new(mocks.MockJobIndexRepo)
	storage := new(mocks.MockObjectStorage)
	geometry := new(mocks.MockPageGeometry)
	svc := newHighlightService(index, storage, geometry)

	doc := []byte("%PDF-1.4")
	stubDocument(index, storage, "J1", doc)
	geometry.On("FindPhrase", doc, 1, "missing words").Return(nil, domain.ErrTextNotFound)

	_, err := svc.Locate(context.Background(), "J1", 1, "missing words", 1.0)
	assert.ErrorIs(t, err, domain.ErrTextNotFound)
}
