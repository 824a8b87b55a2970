package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docreview/internal/service"
)

// HighlightHandler handles page geometry and highlight lookup endpoints.
type HighlightHandler struct {
	highlights service.HighlightService
}

// NewHighlightHandler creates a new HighlightHandler.
func NewHighlightHandler(highlights service.HighlightService) *HighlightHandler {
	return &HighlightHandler{highlights: highlights}
}

// PageView handles GET /api/v1/jobs/:id/pages/:page
func (h *HighlightHandler) PageView(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
		return
	}
	scale, ok := parseScale(c)
	if !ok {
		return
	}

	view, err := h.highlights.PageView(c.Request.Context(), c.Param("id"), page, scale)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Locate handles GET /api/v1/jobs/:id/highlights
func (h *HighlightHandler) Locate(c *gin.Context) {
	phrase := c.Query("content")
	if phrase == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_CONTENT", "content query parameter is required")
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
		return
	}
	scale, ok := parseScale(c)
	if !ok {
		return
	}

	result, err := h.highlights.Locate(c.Request.Context(), c.Param("id"), page, phrase, scale)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// parseScale reads the optional scale query parameter. Zero means "use the
// configured default". On parse failure it writes the error response and
// returns false.
func parseScale(c *gin.Context) (float64, bool) {
	raw := c.Query("scale")
	if raw == "" {
		return 0, true
	}
	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SCALE", "scale must be a number")
		return 0, false
	}
	return scale, true
}
