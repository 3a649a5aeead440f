package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"docuflow/internal/config"
	"docuflow/internal/handler"
	"docuflow/internal/logger"
	"docuflow/internal/matching"
	"docuflow/internal/reconcile"
	"docuflow/internal/repository/postgres"
	"docuflow/internal/router"
	"docuflow/internal/service"
	s3storage "docuflow/internal/storage/s3"
	"docuflow/internal/webhook"
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

	zlog, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zlog.Sync()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	receiptRepo := postgres.NewReceiptRepo(db)
	resumeRepo := postgres.NewResumeRepo(db)
	contractRepo := postgres.NewContractRepo(db)
	jobRepo := postgres.NewJobPostingRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	docSvc := service.NewDocumentService(docRepo, invoiceRepo, receiptRepo, resumeRepo, contractRepo, s3Client, &cfg.S3, zlog)
	jobSvc := service.NewJobService(jobRepo, resumeRepo, zlog)
	matchSvc := matching.NewService(resumeRepo, jobRepo, cfg.Matching.BatchLimit, zlog)

	registry := reconcile.NewRegistry(
		reconcile.NewInvoiceReconciler(invoiceRepo, docRepo, zlog),
		reconcile.NewReceiptReconciler(receiptRepo, docRepo, zlog),
		reconcile.NewResumeReconciler(resumeRepo, docRepo, zlog),
		reconcile.NewContractReconciler(contractRepo, docRepo, zlog),
	)

	verifier := webhook.NewVerifier(cfg.Webhook.Secret, cfg.Webhook.ReplayWindow, nil)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, zlog)
	docH := handler.NewDocumentHandler(docSvc, zlog)
	jobH := handler.NewJobHandler(jobSvc, zlog)
	matchH := handler.NewMatchHandler(matchSvc, zlog)
	webhookH := handler.NewWebhookHandler(docSvc, registry, zlog)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, verifier, cfg.Server.AllowedOrigins, authH, docH, jobH, matchH, webhookH, healthH, zlog)

	zlog.Info("server starting", zap.String("addr", cfg.Server.Port))
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
