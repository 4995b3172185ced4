package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/middleware"
	"github.com/noracond/noracond-backend/internal/service"
)

// ClientHandler handles client registry requests
type ClientHandler struct {
	service service.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(service service.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req domain.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	client, err := h.service.Create(&req, middleware.GetUserID(c))
	switch {
	case errors.Is(err, common.ErrCpfCnpjTaken):
		common.ErrorResponse(c, 400, "CPF/CNPJ already registered")
		return
	case errors.Is(err, common.ErrClientEmailTaken):
		common.ErrorResponse(c, 400, "Email already registered to another client")
		return
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to create client")
		return
	}

	common.CreatedResponse(c, client)
}

// List handles GET /api/clients?page=&limit=
func (h *ClientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	clients, meta, err := h.service.List(page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list clients")
		return
	}

	common.SuccessResponse(c, clients, meta)
}

// GetByID handles GET /api/clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	client, err := h.service.GetByID(c.Param("id"))
	if errors.Is(err, common.ErrClientNotFound) {
		common.ErrorResponse(c, 404, "Client not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load client")
		return
	}

	common.SuccessResponse(c, client, nil)
}

// Update handles PUT /api/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	var req domain.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	client, err := h.service.Update(c.Param("id"), &req)
	switch {
	case errors.Is(err, common.ErrClientNotFound):
		common.ErrorResponse(c, 404, "Client not found")
		return
	case errors.Is(err, common.ErrCpfCnpjTaken):
		common.ErrorResponse(c, 400, "CPF/CNPJ already registered")
		return
	case errors.Is(err, common.ErrClientEmailTaken):
		common.ErrorResponse(c, 400, "Email already registered to another client")
		return
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to update client")
		return
	}

	common.SuccessResponse(c, client, nil)
}

// Delete handles DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Param("id"))
	if errors.Is(err, common.ErrClientNotFound) {
		common.ErrorResponse(c, 404, "Client not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete client")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
