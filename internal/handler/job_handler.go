package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"docreview/internal/service"
)

// presignExpiry is how long a document view link stays valid.
const presignExpiry = 15 * time.Minute

// JobHandler handles extraction job listing and lookup endpoints.
type JobHandler struct {
	jobs service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobs service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	summaries, total, err := h.jobs.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, summaries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// GetDocumentURL handles GET /api/v1/jobs/:id/document
func (h *JobHandler) GetDocumentURL(c *gin.Context) {
	url, err := h.jobs.GetDocumentURL(c.Request.Context(), c.Param("id"), presignExpiry)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url, "expires_in": int(presignExpiry.Seconds())})
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
