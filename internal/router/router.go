package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docuflow/internal/handler"
	"docuflow/internal/middleware"
	"docuflow/internal/service"
	"docuflow/internal/webhook"
)

// Setup configures the Gin engine with all routes and middleware. Webhook
// routes sit outside the JWT-protected group; they authenticate with the
// shared-secret verifier instead.
func Setup(
	authSvc service.AuthService,
	verifier *webhook.Verifier,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	docH *handler.DocumentHandler,
	jobH *handler.JobHandler,
	matchH *handler.MatchHandler,
	webhookH *handler.WebhookHandler,
	healthH *handler.HealthHandler,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Worker callbacks - HMAC verified, no JWT
	hooks := r.Group("/api/webhooks")
	hooks.Use(middleware.WebhookVerify(verifier, log))
	hooks.POST("/document-uploaded", webhookH.DocumentUploaded)
	hooks.POST("/invoice-processed", webhookH.InvoiceProcessed)
	hooks.POST("/receipt-processed", webhookH.ReceiptProcessed)
	hooks.POST("/resume-processed", webhookH.ResumeProcessed)
	hooks.POST("/contract-analyzed", webhookH.ContractAnalyzed)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	docs := protected.Group("/documents")
	docs.POST("", docH.Upload)
	docs.GET("", docH.List)
	docs.GET("/:id", docH.Get)
	docs.GET("/:id/download", docH.DownloadURL)
	docs.DELETE("/:id", docH.Delete)

	jobs := protected.Group("/jobs")
	jobs.POST("", jobH.Create)
	jobs.GET("", jobH.List)
	jobs.GET("/:id", jobH.Get)
	jobs.PUT("/:id", jobH.Update)
	jobs.DELETE("/:id", jobH.Delete)
	jobs.POST("/:id/batch-match", matchH.BatchMatch)

	resumes := protected.Group("/resumes")
	resumes.POST("/:id/match/:jobId", matchH.MatchResume)

	return r
}
