package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview/internal/extraction"
	"docreview/internal/service"
)

// SessionHandler handles review session lifecycle and edit endpoints.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	id := h.sessions.Create()
	RespondCreated(c, gin.H{"session_id": id})
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	snap, err := h.sessions.Snapshot(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Submit handles POST /api/v1/sessions/:id/submit
func (h *SessionHandler) Submit(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	jobID, err := h.sessions.Submit(c.Request.Context(), c.Param("id"), service.SubmitInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gin.H{"job_id": jobID})
}

type attachRequest struct {
	JobID string `json:"job_id" binding:"required"`
}

// Attach handles POST /api/v1/sessions/:id/attach
func (h *SessionHandler) Attach(c *gin.Context) {
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "job_id is required")
		return
	}
	if err := h.sessions.Attach(c.Param("id"), req.JobID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"attached": true})
}

// Fetch handles POST /api/v1/sessions/:id/fetch
func (h *SessionHandler) Fetch(c *gin.Context) {
	snap, err := h.sessions.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}

// BeginEdit handles POST /api/v1/sessions/:id/edit
func (h *SessionHandler) BeginEdit(c *gin.Context) {
	if err := h.sessions.BeginEdit(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"editing": true})
}

// fieldRequest addresses one leaf in the tree. Index is present for list
// sections and absent otherwise.
type fieldRequest struct {
	Section    string  `json:"section" binding:"required"`
	Index      *int    `json:"index,omitempty"`
	Field      string  `json:"field,omitempty"`
	Value      *string `json:"value"`
	SourcePage *int    `json:"page_number,omitempty"`
	// Replace swaps the whole leaf, provenance included, instead of
	// preserving the existing source page.
	Replace bool `json:"replace,omitempty"`
}

// SetField handles PATCH /api/v1/sessions/:id/fields
func (h *SessionHandler) SetField(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "section is required")
		return
	}

	path := extraction.Path{Index: req.Index, Field: req.Field}
	var err error
	if req.Replace {
		leaf := &extraction.LeafField{Value: req.Value, SourcePage: req.SourcePage}
		err = h.sessions.SetLeaf(c.Param("id"), req.Section, path, leaf)
	} else {
		err = h.sessions.SetField(c.Param("id"), req.Section, path, req.Value)
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}

// recordRequest carries the fields of a record to append. Values arrive as
// plain text; new entries carry no provenance.
type recordRequest struct {
	Section string             `json:"section" binding:"required"`
	Fields  []recordFieldInput `json:"fields"`
}

type recordFieldInput struct {
	Name  string  `json:"name" binding:"required"`
	Value *string `json:"value"`
}

// AppendRecord handles POST /api/v1/sessions/:id/records
func (h *SessionHandler) AppendRecord(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "section is required")
		return
	}

	rec := extraction.NewRecord()
	for _, f := range req.Fields {
		rec.Set(f.Name, extraction.LeafValue(f.Value, nil))
	}
	if err := h.sessions.AppendRecord(c.Param("id"), req.Section, rec); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gin.H{"appended": true})
}

type removeRecordRequest struct {
	Section string `json:"section" binding:"required"`
	Index   *int   `json:"index" binding:"required"`
}

// RemoveRecord handles DELETE /api/v1/sessions/:id/records
func (h *SessionHandler) RemoveRecord(c *gin.Context) {
	var req removeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "section and index are required")
		return
	}
	if err := h.sessions.RemoveRecord(c.Param("id"), req.Section, *req.Index); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"removed": true})
}

// Save handles POST /api/v1/sessions/:id/save
func (h *SessionHandler) Save(c *gin.Context) {
	if err := h.sessions.Save(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"saved": true})
}

// Cancel handles POST /api/v1/sessions/:id/cancel
func (h *SessionHandler) Cancel(c *gin.Context) {
	if err := h.sessions.Cancel(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"cancelled": true})
}

// Reset handles POST /api/v1/sessions/:id/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	if err := h.sessions.Reset(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"reset": true})
}
