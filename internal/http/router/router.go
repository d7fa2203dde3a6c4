// Package router assembles the Gin engine from the initialized application.
package router

import (
	"net/http"

	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the Gin engine, mounts global middleware, and registers all
// module routes under /api.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	globalLimiter := httpkit.NewIPRateLimiter(rate.Limit(50), 100, app.Logger)
	engine.Use(globalLimiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		if err := app.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requiredAuth := httpkit.AuthRequired(app.Config)
	optionalAuth := httpkit.AuthOptional(app.Config)

	api := engine.Group("/api")

	protected := engine.Group("/api")
	protected.Use(requiredAuth)

	admin := engine.Group("/api/admin")
	admin.Use(requiredAuth, httpkit.RequireRole("admin"))

	ctx := &apphttp.RouterContext{
		Engine:          engine,
		API:             api,
		Protected:       protected,
		Admin:           admin,
		Config:          app.Config,
		OptionalAuth:    optionalAuth,
		RequiredAuth:    requiredAuth,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if app.Config.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = app.Config.GetCORSOrigins()
		corsConfig.AllowCredentials = app.Config.GetCORSAllowCreds()
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	return cors.New(corsConfig)
}
