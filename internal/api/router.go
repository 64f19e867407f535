package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guestbook-api/internal/auth"
	"github.com/guestbook-api/internal/config"
	"github.com/guestbook-api/internal/metrics"
	"github.com/guestbook-api/internal/ratelimit"
	"github.com/guestbook-api/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies are the components the router dispatches to.
// GeneralLimiter, Metrics and DB are optional.
type Dependencies struct {
	Services       *service.Services
	Issuer         *auth.Issuer
	WriteLimiter   ratelimit.Checker
	GeneralLimiter ratelimit.Checker
	Metrics        *metrics.Metrics
	DB             HealthChecker
}

// NewRouter creates and configures the Gin router
func NewRouter(deps *Dependencies, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigin))
	if deps.Metrics != nil {
		router.Use(metricsMiddleware(deps.Metrics))
	}

	// Handlers
	postHandler := NewPostHandler(deps.Services, log)
	moderationHandler := NewModerationHandler(deps.Services, log)
	authHandler := NewAuthHandler(deps.Issuer, log)

	// Health check
	router.GET("/health", healthCheck(deps.DB))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	writeLimit := rateLimitMiddleware(deps.WriteLimiter, "write", deps.Metrics, log)

	// API v1
	v1 := router.Group("/v1")
	v1.Use(timeoutMiddleware(cfg.Server.RequestTimeout))
	if deps.GeneralLimiter != nil {
		v1.Use(rateLimitMiddleware(deps.GeneralLimiter, "general", deps.Metrics, log))
	}
	{
		v1.GET("/hello", postHandler.Hello)
		v1.GET("/avatars/seed", postHandler.AvatarSeed)

		// Guestbook entries
		posts := v1.Group("/posts")
		{
			posts.GET("", postHandler.List)
			posts.GET("/latest", postHandler.GetLatest)
			posts.POST("", writeLimit, postHandler.Create)
			posts.PUT("/:id", writeLimit, postHandler.Update)
			posts.DELETE("/:id", writeLimit, postHandler.Delete)
		}

		// Moderation
		admin := v1.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)

			protected := admin.Group("")
			protected.Use(adminAuthMiddleware(deps.Issuer))
			{
				protected.GET("/posts", moderationHandler.List)
				protected.PATCH("/posts/:id", moderationHandler.Moderate)
				protected.GET("/stats", moderationHandler.Stats)
			}
		}
	}

	return router
}

// healthCheck returns the health status, pinging the database when one is set
func healthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code, dbStatus := "healthy", http.StatusOK, "unconfigured"

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			dbStatus = "up"
			if err := db.HealthCheck(ctx); err != nil {
				status, code, dbStatus = "unhealthy", http.StatusServiceUnavailable, "down"
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "guestbook-api",
			"database":  dbStatus,
		})
	}
}
