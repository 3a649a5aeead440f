package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuflow/internal/service"
)

// JobHandler handles job posting CRUD endpoints.
type JobHandler struct {
	jobService service.JobService
	log        *zap.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{jobService: jobService, log: log}
}

// Create handles POST /api/v1/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req service.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "title and description are required")
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondCreated(c, job)
}

// Get handles GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job id")
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), jobID)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, job)
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	jobs, total, err := h.jobService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job id")
		return
	}

	var req service.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "title and description are required")
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), jobID, req)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, job)
}

// Delete handles DELETE /api/v1/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job id")
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), jobID); err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
