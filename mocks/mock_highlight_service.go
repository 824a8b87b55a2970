package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/service"
)

// MockHighlightService is a mock implementation of service.HighlightService.
type MockHighlightService struct {
	mock.Mock
}

func (m *MockHighlightService) PageView(ctx context.Context, jobID string, pageNumber int, scale float64) (*service.PageView, error) {
	args := m.Called(ctx, jobID, pageNumber, scale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PageView), args.Error(1)
}

func (m *MockHighlightService) Locate(ctx context.Context, jobID string, pageNumber int, phrase string, scale float64) (*service.HighlightResult, error) {
	args := m.Called(ctx, jobID, pageNumber, phrase, scale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HighlightResult), args.Error(1)
}
