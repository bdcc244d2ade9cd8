package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/service"
	"github.com/jengzang/run-tracker-go/pkg/response"
)

// RunHandler handles HTTP requests for run history
type RunHandler struct {
	runService *service.RunService
}

// NewRunHandler creates a new run handler
func NewRunHandler(runService *service.RunService) *RunHandler {
	return &RunHandler{
		runService: runService,
	}
}

// GetRuns handles GET /api/v1/runs
func (h *RunHandler) GetRuns(c *gin.Context) {
	var filter models.RunFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.runService.GetRuns(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetRunByID handles GET /api/v1/runs/:id
func (h *RunHandler) GetRunByID(c *gin.Context) {
	run, err := h.runService.GetRunByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if run == nil {
		response.NotFound(c, "Run not found")
		return
	}

	response.Success(c, run)
}

// DeleteRun handles DELETE /api/v1/runs/:id
func (h *RunHandler) DeleteRun(c *gin.Context) {
	deleted, err := h.runService.DeleteRun(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !deleted {
		response.NotFound(c, "Run not found")
		return
	}

	response.Success(c, nil)
}
