// Package admin provides the back-office bounded context module.
package admin

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"estate_portal_backend/internal/admin/handler"
	"estate_portal_backend/internal/admin/repository"
	"estate_portal_backend/internal/admin/service"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/platform/logger"
)

// Module is the admin bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the admin module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "admin"
}

// RegisterRoutes mounts the admin-only routes. The admin group already
// carries required auth and the admin role gate.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/users", m.handler.ListUsers)
	ctx.Admin.GET("/dashboard", m.handler.Dashboard)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
