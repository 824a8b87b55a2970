package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
)

// MockJobStore is a mock implementation of port.JobStore.
type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) FetchResult(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobStore) ListJobs(ctx context.Context) ([]domain.JobSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobSummary), args.Error(1)
}
