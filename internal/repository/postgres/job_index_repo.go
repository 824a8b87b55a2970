package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docreview/internal/domain"
	"docreview/internal/port"
)

type jobIndexRepo struct {
	db *sqlx.DB
}

// NewJobIndexRepo creates a new PostgreSQL-backed JobIndexRepository.
func NewJobIndexRepo(db *sqlx.DB) port.JobIndexRepository {
	return &jobIndexRepo{db: db}
}

func (r *jobIndexRepo) Create(ctx context.Context, rec *domain.JobRecord) error {
	now := time.Now().UTC()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.SubmittedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO review_jobs
		(id, job_id, filename, content_type, file_size, s3_bucket, s3_key,
		 status, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.JobID, rec.Filename, rec.ContentType, rec.FileSize,
		rec.S3Bucket, rec.S3Key, rec.Status, rec.SubmittedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobIndexRepo.Create: %w", err)
	}
	return nil
}

func (r *jobIndexRepo) GetByJobID(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	var rec domain.JobRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM review_jobs WHERE job_id = $1", jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("jobIndexRepo.GetByJobID: %w", err)
	}
	return &rec, nil
}

func (r *jobIndexRepo) List(ctx context.Context, offset, limit int) ([]domain.JobRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM review_jobs")
	if err != nil {
		return nil, 0, fmt.Errorf("jobIndexRepo.List count: %w", err)
	}

	var recs []domain.JobRecord
	err = r.db.SelectContext(ctx, &recs,
		`SELECT * FROM review_jobs
		 ORDER BY submitted_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobIndexRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *jobIndexRepo) UpdateStatus(ctx context.Context, jobID string, status domain.JobStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE review_jobs SET status = $1, updated_at = $2 WHERE job_id = $3",
		status, time.Now().UTC(), jobID)
	if err != nil {
		return fmt.Errorf("jobIndexRepo.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("jobIndexRepo.UpdateStatus rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
