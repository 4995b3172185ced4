package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/middleware"
	"github.com/noracond/noracond-backend/internal/service"
)

// ChatHandler handles the direct-messaging endpoints
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// SendMessage handles POST /api/chat/send
func (h *ChatHandler) SendMessage(c *gin.Context) {
	senderID := middleware.GetUserID(c)
	if senderID == "" {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(senderID, &req)
	switch {
	case errors.Is(err, common.ErrSelfMessage):
		common.ErrorResponse(c, 400, "Cannot send a message to yourself")
		return
	case errors.Is(err, common.ErrEmptyContent):
		common.ErrorResponse(c, 400, "Message content is empty")
		return
	case errors.Is(err, common.ErrContentTooLong):
		common.ErrorResponse(c, 400, "Message content exceeds the maximum length")
		return
	case errors.Is(err, common.ErrRecipientAbsent):
		common.ErrorResponse(c, 400, "Recipient does not exist")
		return
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to send message")
		return
	}

	middleware.CountMessageSent()
	common.CreatedResponse(c, msg)
}

// GetConversation handles GET /api/chat/conversation/:otherUserId
func (h *ChatHandler) GetConversation(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	messages, err := h.service.GetConversation(callerID, c.Param("otherUserId"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load conversation")
		return
	}

	common.SuccessResponse(c, messages, nil)
}

// GetNewMessages handles GET /api/chat/conversation/:otherUserId/new?since=<messageId>
func (h *ChatHandler) GetNewMessages(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	messages, err := h.service.NewMessages(callerID, c.Param("otherUserId"), c.Query("since"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to poll conversation")
		return
	}

	common.SuccessResponse(c, messages, nil)
}

// GetContacts handles GET /api/chat/contacts
func (h *ChatHandler) GetContacts(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	contacts, err := h.service.GetContacts(callerID)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load contacts")
		return
	}

	common.SuccessResponse(c, contacts, nil)
}

// MarkConversationRead handles POST /api/chat/conversation/:otherUserId/mark-read
func (h *ChatHandler) MarkConversationRead(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	if callerID == "" {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	if err := h.service.MarkConversationRead(callerID, c.Param("otherUserId")); err != nil {
		common.ErrorResponse(c, 500, "Failed to mark conversation as read")
		return
	}

	common.SuccessResponse(c, gin.H{"marked": true}, nil)
}
