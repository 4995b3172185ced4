package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/middleware"
	"github.com/noracond/noracond-backend/internal/service"
)

// ProcessHandler handles legal process requests
type ProcessHandler struct {
	service service.ProcessService
}

// NewProcessHandler creates a new ProcessHandler
func NewProcessHandler(service service.ProcessService) *ProcessHandler {
	return &ProcessHandler{service: service}
}

// Create handles POST /api/processes
func (h *ProcessHandler) Create(c *gin.Context) {
	var req domain.CreateProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	process, err := h.service.Create(&req, middleware.GetUserID(c))
	switch {
	case errors.Is(err, common.ErrClientNotFound):
		common.ErrorResponse(c, 400, "Client does not exist")
		return
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, 400, "Responsible user does not exist")
		return
	case errors.Is(err, common.ErrProcessNumberTaken):
		common.ErrorResponse(c, 400, "Process number already registered")
		return
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to create process")
		return
	}

	common.CreatedResponse(c, process)
}

// List handles GET /api/processes
func (h *ProcessHandler) List(c *gin.Context) {
	processes, err := h.service.List()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list processes")
		return
	}

	common.SuccessResponse(c, processes, nil)
}

// GetByID handles GET /api/processes/:id
func (h *ProcessHandler) GetByID(c *gin.Context) {
	process, err := h.service.GetByID(c.Param("id"))
	if errors.Is(err, common.ErrProcessNotFound) {
		common.ErrorResponse(c, 404, "Process not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load process")
		return
	}

	common.SuccessResponse(c, process, nil)
}

// ListByClient handles GET /api/processes/client/:clientId
func (h *ProcessHandler) ListByClient(c *gin.Context) {
	processes, err := h.service.ListByClient(c.Param("clientId"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list processes")
		return
	}

	common.SuccessResponse(c, processes, nil)
}

// ListByUser handles GET /api/processes/user/:userId
func (h *ProcessHandler) ListByUser(c *gin.Context) {
	processes, err := h.service.ListByResponsibleUser(c.Param("userId"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list processes")
		return
	}

	common.SuccessResponse(c, processes, nil)
}

// ListMine handles GET /api/processes/mine
func (h *ProcessHandler) ListMine(c *gin.Context) {
	processes, err := h.service.ListByResponsibleUser(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list processes")
		return
	}

	common.SuccessResponse(c, processes, nil)
}

// Update handles PUT /api/processes/:id
func (h *ProcessHandler) Update(c *gin.Context) {
	var req domain.UpdateProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	process, err := h.service.Update(c.Param("id"), &req)
	if errors.Is(err, common.ErrProcessNotFound) {
		common.ErrorResponse(c, 404, "Process not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update process")
		return
	}

	common.SuccessResponse(c, process, nil)
}

// Delete handles DELETE /api/processes/:id
func (h *ProcessHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Param("id"))
	if errors.Is(err, common.ErrProcessNotFound) {
		common.ErrorResponse(c, 404, "Process not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete process")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
