package domain

// JobStatus is the lifecycle of an extraction job as reported by the job
// store. Anything other than complete means "not yet ready" and is surfaced
// verbatim rather than interpreted.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusComplete   JobStatus = "complete"
	JobStatusFailed     JobStatus = "failed"
)

// SessionState is the review session lifecycle.
type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionSubmitting SessionState = "submitting"
	SessionSubmitted  SessionState = "submitted"
	SessionFetching   SessionState = "fetching"
	SessionLoaded     SessionState = "loaded"
	SessionEditing    SessionState = "editing"
	SessionFailed     SessionState = "failed"
)

// FileType represents the allowed document types for submission.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}
