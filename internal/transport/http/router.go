package handlers

import (
	"time"

	"userdirectory/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins  []string
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter wires routes and middleware. limiter may be nil, in which case
// mutating routes are not rate limited.
func NewRouter(cfg RouterConfig, userHandler *UserHandler, limiter *middleware.RateLimiter, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	writeLimit := func(c *gin.Context) { c.Next() }
	if limiter != nil {
		writeLimit = limiter.Limit("users_write", cfg.RateLimit, cfg.RateLimitWindow)
	}

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.POST("", writeLimit, userHandler.Create)
			users.PUT("/:id", writeLimit, userHandler.Update)
			users.DELETE("/:id", writeLimit, userHandler.Delete)
		}
		api.GET("/stats", userHandler.Stats)
		api.GET("/health", userHandler.Health)
	}

	return r
}
