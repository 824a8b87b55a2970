package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docreview/internal/domain"
)

// MockJobService is a mock implementation of service.JobService.
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) List(ctx context.Context, offset, limit int) ([]domain.JobSummary, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobSummary), args.Int(1), args.Error(2)
}

func (m *MockJobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) GetRecord(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobRecord), args.Error(1)
}

func (m *MockJobService) GetDocumentURL(ctx context.Context, jobID string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, jobID, expiry)
	return args.String(0), args.Error(1)
}
