package port

import (
	"context"

	"docreview/internal/domain"
)

// JobStore abstracts the job store service. FetchResult returns the job's
// current status snapshot; the result payload is present only when the job
// is complete. ListJobs is a convenience listing; implementations without
// one return an empty slice, which must not break manual job-id entry.
type JobStore interface {
	FetchResult(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]domain.JobSummary, error)
}
