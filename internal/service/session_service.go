package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"docreview/internal/config"
	"docreview/internal/domain"
	"docreview/internal/extraction"
	"docreview/internal/port"
	"docreview/internal/review"
)

// SubmitInput is the DTO for document submission requests.
type SubmitInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// SessionService manages review sessions and drives their lifecycle.
type SessionService interface {
	Create() string
	Get(id string) (*review.Session, error)
	Delete(id string) error
	Snapshot(id string) (*review.Snapshot, error)
	Submit(ctx context.Context, id string, input SubmitInput) (string, error)
	Attach(id, jobID string) error
	Fetch(ctx context.Context, id string) (*review.Snapshot, error)
	BeginEdit(id string) error
	SetField(id, section string, path extraction.Path, text *string) error
	SetLeaf(id, section string, path extraction.Path, leaf *extraction.LeafField) error
	AppendRecord(id, section string, rec *extraction.Record) error
	RemoveRecord(id, section string, index int) error
	Save(id string) error
	Cancel(id string) error
	Reset(id string) error
}

type sessionService struct {
	mu        sync.RWMutex
	sessions  map[string]*review.Session
	extractor port.Extractor
	jobs      port.JobStore
	storage   port.ObjectStorage
	index     port.JobIndexRepository
	s3cfg     *config.S3Config
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(
	extractor port.Extractor,
	jobs port.JobStore,
	storage port.ObjectStorage,
	index port.JobIndexRepository,
	s3cfg *config.S3Config,
) SessionService {
	return &sessionService{
		sessions:  make(map[string]*review.Session),
		extractor: extractor,
		jobs:      jobs,
		storage:   storage,
		index:     index,
		s3cfg:     s3cfg,
	}
}

func (s *sessionService) Create() string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = review.NewSession(s.extractor, s.jobs)
	s.mu.Unlock()
	return id
}

func (s *sessionService) Get(id string) (*review.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *sessionService) Snapshot(id string) (*review.Snapshot, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	return &snap, nil
}

// Submit validates the uploaded document, retains a copy in object storage,
// hands the document to the extraction backend through the session, and
// records the assigned job in the local index.
func (s *sessionService) Submit(ctx context.Context, id string, input SubmitInput) (string, error) {
	sess, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if input.File == nil || input.Header == nil || input.Header.Filename == "" {
		return "", domain.ErrNoFile
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return "", domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return "", domain.ErrFileTooLarge
	}

	// Magic-byte check; the extension alone is not trusted.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		return "", domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking file: %w", err)
	}

	s3Key := fmt.Sprintf("uploads/%s/%s", uuid.New(), input.Header.Filename)
	_, err = s.storage.Put(ctx, port.PutObjectInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: detectedType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("sessionService.Submit: upload to storage failed: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking file: %w", err)
	}

	jobID, err := sess.Submit(ctx, input.Header.Filename, detectedType, input.File)
	if err != nil {
		// The retained copy is useless without a job.
		if delErr := s.storage.Delete(ctx, s.s3cfg.Bucket, s3Key); delErr != nil {
			log.Printf("sessionService.Submit: cleanup of %s failed: %v", s3Key, delErr)
		}
		return "", err
	}

	rec := &domain.JobRecord{
		JobID:       jobID,
		Filename:    input.Header.Filename,
		ContentType: detectedType,
		FileSize:    input.Header.Size,
		S3Bucket:    s.s3cfg.Bucket,
		S3Key:       s3Key,
		Status:      domain.JobStatusPending,
	}
	if err := s.index.Create(ctx, rec); err != nil {
		log.Printf("sessionService.Submit: indexing job %s failed: %v", jobID, err)
	}
	return jobID, nil
}

func (s *sessionService) Attach(id, jobID string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.Attach(jobID)
}

// Fetch polls the extraction backend once and returns the refreshed
// snapshot. Stale responses arriving after a reset are swallowed; the caller
// sees the post-reset snapshot.
func (s *sessionService) Fetch(ctx context.Context, id string) (*review.Snapshot, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = sess.Fetch(ctx)
	if err != nil && !errors.Is(err, domain.ErrStaleResponse) {
		return nil, err
	}

	snap := sess.Snapshot()
	if snap.Job != nil {
		if idxErr := s.index.UpdateStatus(ctx, snap.Job.ID, snap.Job.Status); idxErr != nil && !errors.Is(idxErr, domain.ErrJobNotFound) {
			log.Printf("sessionService.Fetch: updating index for job %s failed: %v", snap.Job.ID, idxErr)
		}
	}
	return &snap, nil
}

func (s *sessionService) BeginEdit(id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.BeginEdit()
}

func (s *sessionService) SetField(id, section string, path extraction.Path, text *string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.SetField(section, path, text)
}

func (s *sessionService) SetLeaf(id, section string, path extraction.Path, leaf *extraction.LeafField) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.SetLeaf(section, path, leaf)
}

func (s *sessionService) AppendRecord(id, section string, rec *extraction.Record) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.AppendRecord(section, rec)
}

func (s *sessionService) RemoveRecord(id, section string, index int) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.RemoveRecord(section, index)
}

func (s *sessionService) Save(id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.Save()
}

func (s *sessionService) Cancel(id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.Cancel()
}

func (s *sessionService) Reset(id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	sess.Reset()
	return nil
}
