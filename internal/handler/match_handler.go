package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuflow/internal/matching"
)

// MatchHandler handles résumé scoring endpoints.
type MatchHandler struct {
	matcher matching.Service
	log     *zap.Logger
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matcher matching.Service, log *zap.Logger) *MatchHandler {
	return &MatchHandler{matcher: matcher, log: log}
}

// MatchResume handles POST /api/v1/resumes/:id/match/:jobId
func (h *MatchHandler) MatchResume(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid resume id")
		return
	}
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job id")
		return
	}

	result, err := h.matcher.MatchResumeToJob(c.Request.Context(), resumeID, jobID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, result)
}

// BatchMatch handles POST /api/v1/jobs/:id/batch-match
func (h *MatchHandler) BatchMatch(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job id")
		return
	}

	entries, err := h.matcher.BatchMatch(c.Request.Context(), jobID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, entries)
}
