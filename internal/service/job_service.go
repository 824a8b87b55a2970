package service

import (
	"context"
	"log"
	"time"

	"docreview/internal/domain"
	"docreview/internal/port"
)

// JobService exposes job listings and per-job lookups, merging what the
// extraction backend reports with the local submission index.
type JobService interface {
	List(ctx context.Context, offset, limit int) ([]domain.JobSummary, int, error)
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	GetRecord(ctx context.Context, jobID string) (*domain.JobRecord, error)
	GetDocumentURL(ctx context.Context, jobID string, expiry time.Duration) (string, error)
}

type jobService struct {
	jobs    port.JobStore
	index   port.JobIndexRepository
	storage port.ObjectStorage
}

// NewJobService creates a new JobService implementation.
func NewJobService(jobs port.JobStore, index port.JobIndexRepository, storage port.ObjectStorage) JobService {
	return &jobService{jobs: jobs, index: index, storage: storage}
}

// List returns job summaries. The extraction backend is authoritative for
// status; the local index fills in jobs the backend no longer reports and
// keeps listings working when the backend is unreachable.
func (s *jobService) List(ctx context.Context, offset, limit int) ([]domain.JobSummary, int, error) {
	recs, total, err := s.index.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	remote := make(map[string]domain.JobStatus)
	if summaries, err := s.jobs.ListJobs(ctx); err != nil {
		log.Printf("jobService.List: backend listing unavailable: %v", err)
	} else {
		for _, sum := range summaries {
			remote[sum.ID] = sum.Status
		}
	}

	out := make([]domain.JobSummary, 0, len(recs))
	for _, rec := range recs {
		status := rec.Status
		if st, ok := remote[rec.JobID]; ok {
			status = st
		}
		out = append(out, domain.JobSummary{
			ID:       rec.JobID,
			Filename: rec.Filename,
			Status:   status,
		})
	}
	return out, total, nil
}

func (s *jobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.jobs.FetchResult(ctx, jobID)
}

func (s *jobService) GetRecord(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	return s.index.GetByJobID(ctx, jobID)
}

// GetDocumentURL returns a presigned link to the retained copy of the
// submitted document, for the viewer to render.
func (s *jobService) GetDocumentURL(ctx context.Context, jobID string, expiry time.Duration) (string, error) {
	rec, err := s.index.GetByJobID(ctx, jobID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignGet(ctx, rec.S3Bucket, rec.S3Key, expiry)
}
