package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estate_portal_backend/internal/properties/repository"
	"estate_portal_backend/internal/properties/service"
	"estate_portal_backend/internal/properties/transport"
	"estate_portal_backend/platform/httpkit"
	"estate_portal_backend/platform/validator"
)

// Handler exposes the property endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a property handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// scopeFor derives the repository visibility scope from the resolved viewer.
// Admins carry their viewer ID too: the admin flag only widens visibility,
// while the like flag stays personal to whoever is asking.
func scopeFor(id httpkit.Identity) repository.Scope {
	if !id.IsAuthenticated() {
		return repository.Scope{}
	}
	uid := id.UserID()
	return repository.Scope{ViewerID: &uid, Admin: id.HasRole("admin")}
}

// List handles GET /properties.
func (h *Handler) List(c *gin.Context) {
	var q transport.ListPropertiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	props, err := h.svc.List(c.Request.Context(), q, scopeFor(httpkit.GetIdentity(c)))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, props)
}

// Get handles GET /properties/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	prop, err := h.svc.Get(c.Request.Context(), id, scopeFor(httpkit.GetIdentity(c)))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, prop)
}

// Create handles POST /properties.
func (h *Handler) Create(c *gin.Context) {
	viewer := httpkit.MustGetIdentity(c)
	if viewer == nil {
		return
	}

	var req transport.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	prop, err := h.svc.Create(c.Request.Context(), req, viewer.UserID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, prop)
}

// UploadURL handles POST /properties/images/presign.
func (h *Handler) UploadURL(c *gin.Context) {
	viewer := httpkit.MustGetIdentity(c)
	if viewer == nil {
		return
	}

	var req transport.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.svc.GenerateUploadURL(c.Request.Context(), req, viewer.UserID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, resp)
}

// ToggleLike handles POST /properties/:id/like.
func (h *Handler) ToggleLike(c *gin.Context) {
	viewer := httpkit.MustGetIdentity(c)
	if viewer == nil {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.svc.ToggleLike(c.Request.Context(), viewer.UserID(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, resp)
}

// Likes handles GET /properties/:id/likes.
func (h *Handler) Likes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.svc.ListLikes(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, resp)
}

// Liked handles GET /properties/liked and GET /users/me/liked-properties.
func (h *Handler) Liked(c *gin.Context) {
	viewer := httpkit.MustGetIdentity(c)
	if viewer == nil {
		return
	}

	props, err := h.svc.ListLiked(c.Request.Context(), viewer.UserID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, props)
}

// AdminList handles GET /admin/properties.
func (h *Handler) AdminList(c *gin.Context) {
	var q transport.AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	resp, err := h.svc.AdminList(c.Request.Context(), q)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, resp)
}

// Approve handles POST /admin/properties/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	prop, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, prop)
}

// Reject handles POST /admin/properties/:id/reject.
func (h *Handler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Reject(c.Request.Context(), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{"message": "Property rejected and removed"})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, "Property not found")
		return uuid.Nil, false
	}
	return id, true
}
