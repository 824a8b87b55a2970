package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "review session not found"
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "JOB_NOT_FOUND", "extraction job not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnknownSection):
		return http.StatusNotFound, "UNKNOWN_SECTION", "section does not exist in the extraction result"
	case errors.Is(err, domain.ErrOutOfRange):
		return http.StatusBadRequest, "OUT_OF_RANGE", "list index is out of range"
	case errors.Is(err, domain.ErrShapeMismatch):
		return http.StatusBadRequest, "SHAPE_MISMATCH", "operation does not match the section's shape"
	case errors.Is(err, domain.ErrNotEditing):
		return http.StatusConflict, "NOT_EDITING", "session is not in edit mode"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", "operation is not valid in the session's current state"
	case errors.Is(err, domain.ErrSubmitInFlight):
		return http.StatusConflict, "SUBMIT_IN_FLIGHT", "a submission is already in flight for this session"
	case errors.Is(err, domain.ErrNoFile):
		return http.StatusBadRequest, "NO_FILE", "no file was provided"
	case errors.Is(err, domain.ErrNoResult):
		return http.StatusConflict, "NO_RESULT", "no extraction result has been loaded"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrPageOutOfRange):
		return http.StatusBadRequest, "PAGE_OUT_OF_RANGE", "page number is out of range for this document"
	case errors.Is(err, domain.ErrTextNotFound):
		return http.StatusNotFound, "TEXT_NOT_FOUND", "text was not found on the requested page"
	case errors.Is(err, domain.ErrInvalidScale):
		return http.StatusBadRequest, "INVALID_SCALE", "render scale must be positive and within limits"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "the extraction backend is unreachable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
