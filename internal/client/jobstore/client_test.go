package jobstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
)

func TestClient_FetchResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pdf/jobs/J42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"job_id": "J42",
			"status": "complete",
			"filename": "agreement.pdf",
			"result": {"governing_law": {"value": "New York", "page_number": 14}}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	job, err := c.FetchResult(context.Background(), "J42")
	require.NoError(t, err)

	assert.Equal(t, "J42", job.ID)
	assert.Equal(t, domain.JobStatusComplete, job.Status)
	assert.Equal(t, "agreement.pdf", job.Filename)
	assert.JSONEq(t, `{"governing_law": {"value": "New York", "page_number": 14}}`, string(job.Result))
}

func TestClient_FetchResult_Pending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"job_id": "J42", "status": "processing", "filename": "agreement.pdf"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	job, err := c.FetchResult(context.Background(), "J42")
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusProcessing, job.Status)
	assert.Empty(t, job.Result)
}

func TestClient_FetchResult_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchResult(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestClient_FetchResult_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := c.FetchResult(context.Background(), "J42")
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_ListJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pdf/status/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs": [
			{"job_id": "J1", "status": "complete", "filename": "a.pdf"},
			{"job_id": "J2", "status": "processing", "filename": "b.pdf"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)

	require.Len(t, jobs, 2)
	assert.Equal(t, "J1", jobs[0].ID)
	assert.Equal(t, domain.JobStatusComplete, jobs[0].Status)
	assert.Equal(t, "b.pdf", jobs[1].Filename)
}

func TestClient_ListJobs_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
