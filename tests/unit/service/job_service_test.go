package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
	"docreview/internal/service"
	"docreview/mocks"
)

func TestJobService_List_BackendStatusWins(t *testing.T) {
	jobs := new(mocks.MockJobStore)
	index := new(mocks.MockJobIndexRepo)
	svc := service.NewJobService(jobs, index, new(mocks.MockObjectStorage))

	index.On("List", mock.Anything, 0, 20).Return([]domain.JobRecord{
		{JobID: "J1", Filename: "a.pdf", Status: domain.JobStatusPending},
		{JobID: "J2", Filename: "b.pdf", Status: domain.JobStatusProcessing},
	}, 2, nil)
	jobs.On("ListJobs", mock.Anything).Return([]domain.JobSummary{
		{ID: "J1", Filename: "a.pdf", Status: domain.JobStatusComplete},
	}, nil)

	out, total, err := svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, out, 2)

	// J1 got its status refreshed from the backend; J2 keeps the indexed one.
	assert.Equal(t, domain.JobStatusComplete, out[0].Status)
	assert.Equal(t, domain.JobStatusProcessing, out[1].Status)
}

func TestJobService_List_BackendDownFallsBackToIndex(t *testing.T) {
	jobs := new(mocks.MockJobStore)
	index := new(mocks.MockJobIndexRepo)
	svc := service.NewJobService(jobs, index, new(mocks.MockObjectStorage))

	index.On("List", mock.Anything, 0, 20).Return([]domain.JobRecord{
		{JobID: "J1", Filename: "a.pdf", Status: domain.JobStatusPending},
	}, 1, nil)
	jobs.On("ListJobs", mock.Anything).Return(nil, errors.New("connection refused"))

	out, total, err := svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, out, 1)
	assert.Equal(t, domain.JobStatusPending, out[0].Status)
}

func TestJobService_GetDocumentURL(t *testing.T) {
	index := new(mocks.MockJobIndexRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewJobService(new(mocks.MockJobStore), index, storage)

	index.On("GetByJobID", mock.Anything, "J1").Return(&domain.JobRecord{
		JobID:    "J1",
		S3Bucket: "test-bucket",
		S3Key:    "uploads/x/a.pdf",
	}, nil)
	storage.On("PresignGet", mock.Anything, "test-bucket", "uploads/x/a.pdf", 15*time.Minute).
		Return("https://signed.example/a.pdf", nil)

	url, err := svc.GetDocumentURL(context.Background(), "J1", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/a.pdf", url)
}

func TestJobService_GetDocumentURL_UnknownJob(t *testing.T) {
	index := new(mocks.MockJobIndexRepo)
	svc := service.NewJobService(new(mocks.MockJobStore), index, new(mocks.MockObjectStorage))

	index.On("GetByJobID", mock.Anything, "nope").Return(nil, domain.ErrJobNotFound)

	_, err := svc.GetDocumentURL(context.Background(), "nope", 15*time.Minute)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}
