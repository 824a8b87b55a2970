package port

import (
	"context"

	"docreview/internal/domain"
)

// JobIndexRepository persists the local trace of jobs submitted through
// this service.
type JobIndexRepository interface {
	Create(ctx context.Context, rec *domain.JobRecord) error
	GetByJobID(ctx context.Context, jobID string) (*domain.JobRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.JobRecord, int, error)
	UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus) error
}
