package port

import (
	"context"
	"io"
)

// SubmitOutput is the extraction service's acknowledgement of a submission.
type SubmitOutput struct {
	JobID string
}

// Extractor abstracts the asynchronous extraction service. Submit accepts a
// single binary document and returns an opaque job identifier.
type Extractor interface {
	Submit(ctx context.Context, filename, contentType string, body io.Reader) (*SubmitOutput, error)
}
