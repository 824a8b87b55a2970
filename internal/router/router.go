package router

import (
	"github.com/gin-gonic/gin"

	"docreview/internal/config"
	"docreview/internal/handler"
	"docreview/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	sessionH *handler.SessionHandler,
	jobH *handler.JobHandler,
	highlightH *handler.HighlightHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Review sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.Get)
	sessions.DELETE("/:id", sessionH.Delete)
	sessions.POST("/:id/submit", sessionH.Submit)
	sessions.POST("/:id/attach", sessionH.Attach)
	sessions.POST("/:id/fetch", sessionH.Fetch)
	sessions.POST("/:id/edit", sessionH.BeginEdit)
	sessions.PATCH("/:id/fields", sessionH.SetField)
	sessions.POST("/:id/records", sessionH.AppendRecord)
	sessions.DELETE("/:id/records", sessionH.RemoveRecord)
	sessions.POST("/:id/save", sessionH.Save)
	sessions.POST("/:id/cancel", sessionH.Cancel)
	sessions.POST("/:id/reset", sessionH.Reset)
	sessions.GET("/:id/export", exportH.Export)

	// Extraction jobs
	jobs := v1.Group("/jobs")
	jobs.GET("", jobH.List)
	jobs.GET("/:id", jobH.Get)
	jobs.GET("/:id/document", jobH.GetDocumentURL)
	jobs.GET("/:id/pages/:page", highlightH.PageView)
	jobs.GET("/:id/highlights", highlightH.Locate)

	return r
}
