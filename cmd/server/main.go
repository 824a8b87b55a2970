package main

import (
	"fmt"
	"log"

	"docreview/internal/client/extract"
	"docreview/internal/client/jobstore"
	"docreview/internal/config"
	"docreview/internal/handler"
	"docreview/internal/pdfpage"
	"docreview/internal/repository/postgres"
	"docreview/internal/router"
	"docreview/internal/service"
	s3storage "docreview/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	jobIndexRepo := postgres.NewJobIndexRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize extraction backend clients
	extractor := extract.NewClient(cfg.Extractor.BaseURL, cfg.Extractor.Timeout)
	jobs := jobstore.NewClient(cfg.JobStore.BaseURL, cfg.JobStore.Timeout)
	geometry := pdfpage.NewReader()

	// Initialize services
	sessionSvc := service.NewSessionService(extractor, jobs, s3Client, jobIndexRepo, &cfg.S3)
	jobSvc := service.NewJobService(jobs, jobIndexRepo, s3Client)
	highlightSvc := service.NewHighlightService(jobIndexRepo, s3Client, geometry, &cfg.PDF)
	exportSvc := service.NewExportService()

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc)
	jobH := handler.NewJobHandler(jobSvc)
	highlightH := handler.NewHighlightHandler(highlightSvc)
	exportH := handler.NewExportHandler(sessionSvc, exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, sessionH, jobH, highlightH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
