package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/service"
)

// DocumentHandler handles process document requests
type DocumentHandler struct {
	service service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload handles POST /api/documents/processes/:processId (multipart: file)
func (h *DocumentHandler) Upload(c *gin.Context) {
	processID := c.Param("processId")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, 400, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to read upload")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.service.Upload(c.Request.Context(), processID, fileHeader.Filename, contentType, file, fileHeader.Size)
	switch {
	case errors.Is(err, common.ErrEmptyFile):
		common.ErrorResponse(c, 400, "Uploaded file is empty")
		return
	case errors.Is(err, common.ErrFileTooLarge):
		common.ErrorResponse(c, 413, "Uploaded file exceeds the size limit")
		return
	case errors.Is(err, common.ErrProcessNotFound):
		common.ErrorResponse(c, 400, "Process does not exist")
		return
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to store document")
		return
	}

	common.CreatedResponse(c, doc)
}

// ListByProcess handles GET /api/documents/processes/:processId
func (h *DocumentHandler) ListByProcess(c *gin.Context) {
	docs, err := h.service.ListByProcess(c.Param("processId"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list documents")
		return
	}

	common.SuccessResponse(c, docs, nil)
}

// Download handles GET /api/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, body, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if errors.Is(err, common.ErrDocumentNotFound) {
		common.ErrorResponse(c, 404, "Document not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to open document")
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
	c.DataFromReader(200, doc.SizeBytes, doc.ContentType, body, nil)
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, common.ErrDocumentNotFound) {
		common.ErrorResponse(c, 404, "Document not found")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to delete document")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
