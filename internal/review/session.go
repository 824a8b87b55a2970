// Package review owns the client-visible lifecycle of one document review:
// submission, result fetch, edit mode with a baseline/live tree pair, local
// commit and cancel, and reset. Transitions execute to completion one at a
// time; the only suspension points are the collaborator calls, during which
// the session sits in a busy state that rejects duplicate requests.
package review

import (
	"context"
	"fmt"
	"io"
	"sync"

	"docreview/internal/domain"
	"docreview/internal/extraction"
	"docreview/internal/port"
)

// Session is the review session aggregate. baseline is the last tree
// obtained from or committed against the job store; live is the working
// copy visible while editing. When the session is not editing, live is
// absent.
type Session struct {
	mu        sync.Mutex
	extractor port.Extractor
	jobs      port.JobStore

	state     domain.SessionState
	gen       uint64
	job       *domain.Job
	baseline  *extraction.Tree
	live      *extraction.Tree
	statusMsg string
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	State         domain.SessionState `json:"state"`
	StatusMessage string              `json:"status_message,omitempty"`
	Job           *domain.JobSummary  `json:"job,omitempty"`
	Tree          *extraction.Tree    `json:"tree,omitempty"`
	Editing       bool                `json:"editing"`
}

// NewSession creates an idle session against the given collaborators.
func NewSession(extractor port.Extractor, jobs port.JobStore) *Session {
	return &Session{
		extractor: extractor,
		jobs:      jobs,
		state:     domain.SessionIdle,
	}
}

// State returns the current session state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current view: the live tree while editing, the
// baseline otherwise.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State:         s.state,
		StatusMessage: s.statusMsg,
		Editing:       s.state == domain.SessionEditing,
	}
	if s.job != nil {
		snap.Job = &domain.JobSummary{ID: s.job.ID, Filename: s.job.Filename, Status: s.job.Status}
	}
	if snap.Editing {
		snap.Tree = s.live
	} else {
		snap.Tree = s.baseline
	}
	return snap
}

// Submit sends the document to the extraction service. A second Submit
// while one is in flight makes no second network call and returns
// ErrSubmitInFlight so callers can roll back any side effects of the
// duplicate. On collaborator failure the session moves to Failed; retry is
// a fresh user-initiated Reset plus Submit.
func (s *Session) Submit(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	if s.state == domain.SessionSubmitting {
		s.mu.Unlock()
		return "", domain.ErrSubmitInFlight
	}
	if s.state != domain.SessionIdle {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: submit from %s", domain.ErrInvalidTransition, s.state)
	}
	if body == nil || filename == "" {
		s.mu.Unlock()
		return "", domain.ErrNoFile
	}
	s.state = domain.SessionSubmitting
	s.statusMsg = ""
	gen := s.gen
	s.mu.Unlock()

	out, err := s.extractor.Submit(ctx, filename, contentType, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// The session was reset while the request was in flight; the
		// response belongs to a superseded generation and is discarded.
		return "", domain.ErrStaleResponse
	}
	if err != nil {
		s.state = domain.SessionFailed
		s.statusMsg = "submission failed"
		return "", fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	s.job = &domain.Job{ID: out.JobID, Filename: filename, Status: domain.JobStatusPending}
	s.state = domain.SessionSubmitted
	return out.JobID, nil
}

// Attach binds the session to an existing job by identifier, so a result
// can be fetched without resubmitting the document.
func (s *Session) Attach(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionIdle {
		return fmt.Errorf("%w: attach from %s", domain.ErrInvalidTransition, s.state)
	}
	if jobID == "" {
		return domain.ErrJobNotFound
	}
	s.job = &domain.Job{ID: jobID, Status: domain.JobStatusPending}
	s.state = domain.SessionSubmitted
	return nil
}

// Fetch asks the job store for the job's current snapshot. Each call is a
// single explicit request; there is no polling loop. A non-complete status
// is surfaced verbatim and leaves the session where it was, retryable. A
// duplicate Fetch while one is in flight is a no-op.
func (s *Session) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.state == domain.SessionFetching {
		s.mu.Unlock()
		return nil
	}
	if s.state != domain.SessionSubmitted && s.state != domain.SessionLoaded {
		s.mu.Unlock()
		return fmt.Errorf("%w: fetch from %s", domain.ErrInvalidTransition, s.state)
	}
	prev := s.state
	jobID := s.job.ID
	gen := s.gen
	s.state = domain.SessionFetching
	s.mu.Unlock()

	job, err := s.jobs.FetchResult(ctx, jobID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return domain.ErrStaleResponse
	}
	if err != nil {
		s.state = prev
		s.statusMsg = "fetch failed"
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	s.job.Status = job.Status
	if job.Filename != "" {
		s.job.Filename = job.Filename
	}
	if job.Status != domain.JobStatusComplete {
		s.state = prev
		s.statusMsg = string(job.Status)
		return nil
	}

	tree, err := extraction.Parse(job.Result)
	if err != nil {
		s.state = prev
		s.statusMsg = "result unreadable"
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	s.baseline = tree
	s.live = nil
	s.state = domain.SessionLoaded
	s.statusMsg = ""
	return nil
}

// BeginEdit snapshots the baseline into a deep working copy and enters edit
// mode. Edits against the copy can never reach the baseline.
func (s *Session) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionLoaded {
		return fmt.Errorf("%w: beginEdit from %s", domain.ErrInvalidTransition, s.state)
	}
	s.live = s.baseline.Clone()
	s.state = domain.SessionEditing
	return nil
}

// SetField applies a provenance-preserving value edit to the live tree. A
// failed patch leaves the tree unchanged.
func (s *Session) SetField(section string, path extraction.Path, text *string) error {
	return s.edit(func(t *extraction.Tree) (*extraction.Tree, error) {
		return extraction.SetField(t, section, path, text)
	})
}

// SetLeaf replaces a full leaf, provenance included, in the live tree.
func (s *Session) SetLeaf(section string, path extraction.Path, leaf *extraction.LeafField) error {
	return s.edit(func(t *extraction.Tree) (*extraction.Tree, error) {
		return extraction.SetLeaf(t, section, path, leaf)
	})
}

// AppendRecord appends a record to a list section of the live tree.
func (s *Session) AppendRecord(section string, rec *extraction.Record) error {
	return s.edit(func(t *extraction.Tree) (*extraction.Tree, error) {
		return extraction.AppendRecord(t, section, rec)
	})
}

// RemoveRecord removes the indexed record from a list section of the live
// tree.
func (s *Session) RemoveRecord(section string, index int) error {
	return s.edit(func(t *extraction.Tree) (*extraction.Tree, error) {
		return extraction.RemoveRecord(t, section, index)
	})
}

func (s *Session) edit(apply func(*extraction.Tree) (*extraction.Tree, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionEditing {
		return domain.ErrNotEditing
	}
	next, err := apply(s.live)
	if err != nil {
		return err
	}
	s.live = next
	return nil
}

// Save commits the live tree as the new baseline. The commit is local only;
// nothing is written back to the job store.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionEditing {
		return domain.ErrNotEditing
	}
	s.baseline = s.live
	s.live = nil
	s.state = domain.SessionLoaded
	return nil
}

// Cancel discards the live tree and restores the pre-edit baseline exactly.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionEditing {
		return domain.ErrNotEditing
	}
	s.live = nil
	s.state = domain.SessionLoaded
	return nil
}

// Reset discards job, baseline, and live tree and returns to Idle. The
// generation bump makes any in-flight collaborator response stale, so it is
// discarded rather than applied.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = domain.SessionIdle
	s.job = nil
	s.baseline = nil
	s.live = nil
	s.statusMsg = ""
}

// Baseline returns the last committed tree, or nil before a result loads.
func (s *Session) Baseline() *extraction.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline
}

// JobID returns the bound job identifier, or empty before submission.
func (s *Session) JobID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return ""
	}
	return s.job.ID
}
