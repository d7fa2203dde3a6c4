// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// API is the /api route group without auth middleware.
	API *gin.RouterGroup
	// Protected is the authenticated route group under /api.
	Protected *gin.RouterGroup
	// Admin is the admin-only route group under /api/admin.
	Admin *gin.RouterGroup
	// Config is the JWT configuration for auth middleware (scoped access).
	Config config.JWTConfig
	// OptionalAuth resolves the viewer identity without rejecting anonymous
	// or invalid-token requests. Public browse routes mount this themselves.
	OptionalAuth gin.HandlerFunc
	// RequiredAuth rejects requests without a valid bearer token.
	RequiredAuth gin.HandlerFunc
	// AuthRateLimiter is the stricter rate limiter for auth routes.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
