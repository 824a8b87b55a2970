package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docreview/internal/service"
)

// ExportHandler handles review export endpoints.
type ExportHandler struct {
	sessions service.SessionService
	exports  service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(sessions service.SessionService, exports service.ExportService) *ExportHandler {
	return &ExportHandler{sessions: sessions, exports: exports}
}

// Export handles GET /api/v1/sessions/:id/export?format=csv|xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	name := "extraction"
	if jobID := sess.JobID(); jobID != "" {
		name = jobID
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := h.exports.ExportCSV(sess)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)

	case "xlsx":
		data, err := h.exports.ExportXLSX(sess)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}
