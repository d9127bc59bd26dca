package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/marketauth/service"
	"go.uber.org/zap"
)

// RouterConfig holds the optional parts of the HTTP surface
type RouterConfig struct {
	Logger *zap.Logger
	// AllowOrigins enables CORS for the listed frontends; empty disables it.
	AllowOrigins []string
	// LoginRateLimit is the per-IP login request rate; zero disables limiting.
	LoginRateLimit float64
	// TrustedProxyHeaders keys the rate limit on these headers before the
	// socket address. Only set it behind a proxy that overwrites them.
	TrustedProxyHeaders []string
	HealthCheck         HealthCheck
}

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, cfg RouterConfig) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(logger))

	if len(cfg.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Create handlers
	handlers := NewAuthHandlers(authService, cfg.HealthCheck)

	router.GET("/health", handlers.Health)

	// Auth routes
	auth := router.Group("/auth")
	{
		login := []gin.HandlerFunc{handlers.Login}
		if cfg.LoginRateLimit > 0 {
			login = append([]gin.HandlerFunc{RateLimit(cfg.LoginRateLimit, cfg.TrustedProxyHeaders...)}, login...)
		}
		auth.POST("/login", login...)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/me", handlers.Me)
		api.GET("/authorize", handlers.Authorize)
	}

	return router, nil
}
