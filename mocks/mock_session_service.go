package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/extraction"
	"docreview/internal/review"
	"docreview/internal/service"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSessionService) Get(id string) (*review.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Session), args.Error(1)
}

func (m *MockSessionService) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessionService) Snapshot(id string) (*review.Snapshot, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Snapshot), args.Error(1)
}

func (m *MockSessionService) Submit(ctx context.Context, id string, input service.SubmitInput) (string, error) {
	args := m.Called(ctx, id, input)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Attach(id, jobID string) error {
	args := m.Called(id, jobID)
	return args.Error(0)
}

func (m *MockSessionService) Fetch(ctx context.Context, id string) (*review.Snapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Snapshot), args.Error(1)
}

func (m *MockSessionService) BeginEdit(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessionService) SetField(id, section string, path extraction.Path, text *string) error {
	args := m.Called(id, section, path, text)
	return args.Error(0)
}

func (m *MockSessionService) SetLeaf(id, section string, path extraction.Path, leaf *extraction.LeafField) error {
	args := m.Called(id, section, path, leaf)
	return args.Error(0)
}

func (m *MockSessionService) AppendRecord(id, section string, rec *extraction.Record) error {
	args := m.Called(id, section, rec)
	return args.Error(0)
}

func (m *MockSessionService) RemoveRecord(id, section string, index int) error {
	args := m.Called(id, section, index)
	return args.Error(0)
}

func (m *MockSessionService) Save(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessionService) Cancel(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessionService) Reset(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
