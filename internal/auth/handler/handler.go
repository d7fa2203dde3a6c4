package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate_portal_backend/internal/auth/service"
	"estate_portal_backend/internal/auth/transport"
	"estate_portal_backend/platform/httpkit"
	"estate_portal_backend/platform/validator"
)

// Handler handles HTTP requests for authentication and profiles.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Register creates a new account.
// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	result, err := h.svc.Register(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Login signs a user in.
// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Logout acknowledges a sign-out. Access tokens are stateless, so there is
// no server-side session to destroy.
// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	httpkit.OK(c, transport.MessageResponse{Message: "Logged out successfully"})
}

// GetMe returns the authenticated user's profile.
// GET /api/users/me
func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetMe(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateMe applies a partial profile update.
// PUT /api/users/me
func (h *Handler) UpdateMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	result, err := h.svc.UpdateMe(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
