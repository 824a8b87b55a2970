package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrSessionNotFound     = errors.New("review session not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrUnknownSection      = errors.New("unknown section")
	ErrOutOfRange          = errors.New("record index out of range")
	ErrShapeMismatch       = errors.New("edit path does not match section shape")
	ErrNotEditing          = errors.New("session is not in edit mode")
	ErrInvalidTransition   = errors.New("transition not allowed in current session state")
	ErrSubmitInFlight      = errors.New("a submission is already in flight")
	ErrNoFile              = errors.New("no file provided")
	ErrTransport           = errors.New("collaborator request failed")
	ErrStaleResponse       = errors.New("response from superseded session generation")
	ErrNoResult            = errors.New("session has no loaded result")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrPageOutOfRange      = errors.New("page number out of range")
	ErrTextNotFound        = errors.New("text not found on page")
	ErrInvalidScale        = errors.New("scale must be greater than zero")
)
