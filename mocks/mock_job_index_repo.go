package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
)

// MockJobIndexRepo is a mock implementation of port.JobIndexRepository.
type MockJobIndexRepo struct {
	mock.Mock
}

func (m *MockJobIndexRepo) Create(ctx context.Context, rec *domain.JobRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockJobIndexRepo) GetByJobID(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobRecord), args.Error(1)
}

func (m *MockJobIndexRepo) List(ctx context.Context, offset, limit int) ([]domain.JobRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobRecord), args.Int(1), args.Error(2)
}

func (m *MockJobIndexRepo) UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus) error {
	args := m.Called(ctx, jobID, status)
	return args.Error(0)
}
