package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/service"
)

// FinancialHandler handles financial ledger requests
type FinancialHandler struct {
	service service.FinancialService
}

// NewFinancialHandler creates a new FinancialHandler
func NewFinancialHandler(service service.FinancialService) *FinancialHandler {
	return &FinancialHandler{service: service}
}

// Create handles POST /api/financial-entries
func (h *FinancialHandler) Create(c *gin.Context) {
	var req domain.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	entry, err := h.service.Create(&req)
	if errors.Is(err, common.ErrProcessNotFound) {
		common.ErrorResponse(c, 400, "Process does not exist")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create entry")
		return
	}

	common.CreatedResponse(c, entry)
}

// List handles GET /api/financial-entries
func (h *FinancialHandler) List(c *gin.Context) {
	entries, err := h.service.List()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list entries")
		return
	}

	common.SuccessResponse(c, entries, nil)
}

// GetByID handles GET /api/financial-entries/:id
func (h *FinancialHandler) GetByID(c *gin.Context) {
	entry, err := h.service.GetByID(c.Param("id"))
	if errors.Is(err, common.ErrEntryNotFound) {
		common.ErrorResponse(c, 404, "Entry not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load entry")
		return
	}

	common.SuccessResponse(c, entry, nil)
}

// ListByProcess handles GET /api/financial-entries/process/:processId
func (h *FinancialHandler) ListByProcess(c *gin.Context) {
	entries, err := h.service.ListByProcess(c.Param("processId"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list entries")
		return
	}

	common.SuccessResponse(c, entries, nil)
}

// Update handles PUT /api/financial-entries/:id
func (h *FinancialHandler) Update(c *gin.Context) {
	var req domain.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	entry, err := h.service.Update(c.Param("id"), &req)
	if errors.Is(err, common.ErrEntryNotFound) {
		common.ErrorResponse(c, 404, "Entry not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update entry")
		return
	}

	common.SuccessResponse(c, entry, nil)
}

// MarkAsPaid handles POST /api/financial-entries/:id/pay
func (h *FinancialHandler) MarkAsPaid(c *gin.Context) {
	var req domain.MarkAsPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	entry, err := h.service.MarkAsPaid(c.Param("id"), &req)
	if errors.Is(err, common.ErrEntryNotFound) {
		common.ErrorResponse(c, 404, "Entry not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to mark entry as paid")
		return
	}

	common.SuccessResponse(c, entry, nil)
}

// Delete handles DELETE /api/financial-entries/:id
func (h *FinancialHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Param("id"))
	if errors.Is(err, common.ErrEntryNotFound) {
		common.ErrorResponse(c, 404, "Entry not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete entry")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
