package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job is a read-only snapshot of an extraction job as reported by the job
// store. This service never writes a Job; it only observes snapshots.
type Job struct {
	ID       string          `json:"job_id"`
	Status   JobStatus       `json:"status"`
	Filename string          `json:"filename"`
	Result   json.RawMessage `json:"result,omitempty"`
}

// JobSummary is the listing form of a job, without its result payload.
type JobSummary struct {
	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
}

// JobRecord is the locally indexed trace of a job submitted through this
// service. It keeps job listing and page lookups working even when the job
// store offers no listing endpoint.
type JobRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	JobID       string    `db:"job_id" json:"job_id"`
	Filename    string    `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"content_type"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	S3Bucket    string    `db:"s3_bucket" json:"s3_bucket"`
	S3Key       string    `db:"s3_key" json:"s3_key"`
	Status      JobStatus `db:"status" json:"status"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PageDims reports the rendered pixel dimensions of one document page at a
// given scale.
type PageDims struct {
	WidthPx  float64 `json:"width_px"`
	HeightPx float64 `json:"height_px"`
}
