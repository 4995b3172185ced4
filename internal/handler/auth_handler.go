package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/domain"
	"github.com/noracond/noracond-backend/internal/middleware"
	"github.com/noracond/noracond-backend/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	user, err := h.service.Register(&req)
	if errors.Is(err, common.ErrEmailTaken) {
		common.ErrorResponse(c, 400, "Email already registered")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Registration failed")
		return
	}

	common.CreatedResponse(c, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	response, err := h.service.Login(req.Email, req.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.ErrorResponse(c, 401, "Invalid credentials")
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Login failed")
		return
	}

	common.SuccessResponse(c, response, nil)
}

// GetProfile handles GET /api/auth/profile (requires JWT)
func (h *AuthHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, common.APIResponse{
		Data: gin.H{
			"user_id": middleware.GetUserID(c),
			"name":    middleware.GetUserName(c),
			"role":    middleware.GetUserRole(c),
		},
	})
}
