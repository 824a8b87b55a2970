package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docreview/internal/port"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Submit(ctx context.Context, filename, contentType string, body io.Reader) (*port.SubmitOutput, error) {
	args := m.Called(ctx, filename, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SubmitOutput), args.Error(1)
}
