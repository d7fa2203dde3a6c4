// Package properties provides the property listing bounded context module.
package properties

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"estate_portal_backend/internal/adapters/storage"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/internal/properties/cache"
	"estate_portal_backend/internal/properties/handler"
	"estate_portal_backend/internal/properties/repository"
	"estate_portal_backend/internal/properties/service"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"
)

// Module is the properties bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the properties module. storageSvc and
// redisClient may be nil when the corresponding backend is not configured.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, bucket string, redisClient *redis.Client, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	likes := cache.NewLikesCache(redisClient)
	svc := service.New(repo, storageSvc, bucket, likes, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "properties"
}

// Service returns the properties service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the properties repository for cross-module reads.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the public, authenticated and admin property routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public browse routes resolve the viewer when a token is present but
	// never reject anonymous or garbled-token requests.
	public := ctx.API.Group("/properties")
	public.Use(ctx.OptionalAuth)
	public.GET("", m.handler.List)
	// Static segments must register before the :id wildcard.
	public.GET("/liked", ctx.RequiredAuth, m.handler.Liked)
	public.GET("/:id", m.handler.Get)
	public.GET("/:id/likes", m.handler.Likes)

	public.POST("", ctx.RequiredAuth, m.handler.Create)
	public.POST("/images/presign", ctx.RequiredAuth, m.handler.UploadURL)
	public.POST("/:id/like", ctx.RequiredAuth, m.handler.ToggleLike)

	// Alias kept for clients reading likes from the profile screen.
	ctx.Protected.GET("/users/me/liked-properties", m.handler.Liked)

	// Moderation endpoints.
	ctx.Admin.GET("/properties", m.handler.AdminList)
	ctx.Admin.POST("/properties/:id/approve", m.handler.Approve)
	ctx.Admin.POST("/properties/:id/reject", m.handler.Reject)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
