package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docuflow/internal/webhook"
)

// WebhookVerify returns Gin middleware that authenticates worker callbacks
// before any handler runs. Every attempt, accepted or rejected, is logged
// with its outcome. The raw body is restored for downstream binding.
func WebhookVerify(verifier *webhook.Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_PAYLOAD", "message": "unreadable request body"},
			})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signature := c.GetHeader(webhook.SignatureHeader)
		timestamp := c.GetHeader(webhook.TimestampHeader)

		if err := verifier.Verify(body, signature, timestamp); err != nil {
			code := webhook.ErrorCode(err)
			log.Warn("webhook rejected",
				zap.String("request_id", c.GetString("request_id")),
				zap.String("path", c.Request.URL.Path),
				zap.String("remote_addr", c.ClientIP()),
				zap.String("code", code),
				zap.Bool("signature_present", signature != ""),
				zap.Bool("timestamp_present", timestamp != ""),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": code, "message": err.Error()},
			})
			return
		}

		log.Info("webhook verified",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.Request.URL.Path),
			zap.String("remote_addr", c.ClientIP()),
		)
		c.Next()
	}
}
