// Package jobstore implements the job store client. It retrieves job
// status and extraction results from the upstream extraction backend.
package jobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"docreview/internal/domain"
)

// Client talks to the extraction backend's job endpoints over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new job store client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type jobResponse struct {
	JobID    string          `json:"job_id"`
	Status   string          `json:"status"`
	Filename string          `json:"filename"`
	Result   json.RawMessage `json:"result"`
}

type jobListResponse struct {
	Jobs []jobResponse `json:"jobs"`
}

// FetchResult retrieves the current state of a job, including the
// extraction result once the job is complete.
func (c *Client) FetchResult(ctx context.Context, jobID string) (*domain.Job, error) {
	url := fmt.Sprintf("%s/pdf/jobs/%s", c.baseURL, jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch request failed: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: job %s", domain.ErrJobNotFound, jobID)
	default:
		return nil, fmt.Errorf("%w: fetch returned status %d", domain.ErrTransport, resp.StatusCode)
	}

	var out jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode job response: %v", domain.ErrTransport, err)
	}

	return &domain.Job{
		ID:       out.JobID,
		Status:   domain.JobStatus(out.Status),
		Filename: out.Filename,
		Result:   out.Result,
	}, nil
}

// ListJobs retrieves summaries of all jobs known to the backend.
func (c *Client) ListJobs(ctx context.Context) ([]domain.JobSummary, error) {
	url := c.baseURL + "/pdf/status/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: list request failed: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list returned status %d", domain.ErrTransport, resp.StatusCode)
	}

	var out jobListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode job list: %v", domain.ErrTransport, err)
	}

	summaries := make([]domain.JobSummary, 0, len(out.Jobs))
	for _, j := range out.Jobs {
		summaries = append(summaries, domain.JobSummary{
			ID:       j.JobID,
			Status:   domain.JobStatus(j.Status),
			Filename: j.Filename,
		})
	}
	return summaries, nil
}
