// Package auth provides the authentication bounded context module.
package auth

import (
	"estate_portal_backend/internal/auth/handler"
	"estate_portal_backend/internal/auth/repository"
	"estate_portal_backend/internal/auth/service"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg service.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth and profile routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.API.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/register", m.handler.Register)
	authGroup.POST("/login", m.handler.Login)
	authGroup.POST("/logout", m.handler.Logout)

	// Protected profile routes
	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.PUT("/users/me", m.handler.UpdateMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
