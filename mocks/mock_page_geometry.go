package mocks

import (
	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
	"docreview/internal/overlay"
)

// MockPageGeometry is a mock implementation of port.PageGeometry.
type MockPageGeometry struct {
	mock.Mock
}

func (m *MockPageGeometry) PageDims(doc []byte, pageNumber int, scale float64) (*domain.PageDims, error) {
	args := m.Called(doc, pageNumber, scale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageDims), args.Error(1)
}

func (m *MockPageGeometry) FindPhrase(doc []byte, pageNumber int, phrase string) ([]overlay.Highlight, error) {
	args := m.Called(doc, pageNumber, phrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]overlay.Highlight), args.Error(1)
}
