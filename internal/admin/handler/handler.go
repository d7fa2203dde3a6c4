package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate_portal_backend/internal/admin/service"
	"estate_portal_backend/internal/admin/transport"
	"estate_portal_backend/platform/httpkit"
)

// Handler exposes the admin endpoints.
type Handler struct {
	svc *service.Service
}

// New creates an admin handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListUsers handles GET /admin/users.
func (h *Handler) ListUsers(c *gin.Context) {
	var q transport.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	resp, err := h.svc.ListUsers(c.Request.Context(), q)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, resp)
}

// Dashboard handles GET /admin/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, resp)
}
