package server

import (
	"net/http"
	"time"

	ginhandler "user-directory/internal/adapter/gin/handler"
	"user-directory/internal/adapter/gin/middleware"
	ginrouter "user-directory/internal/adapter/gin/router"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	rateLimiter middleware.Limiter,
	allowedOrigins []string,
	staticDir string,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, ginrouter.Options{
		RateLimiter:    rateLimiter,
		AllowedOrigins: allowedOrigins,
		StaticDir:      staticDir,
	}, l)

	l.Info("Gin REST API configured",
		zap.String("address", ginAddr),
		zap.Bool("rate_limit", rateLimiter != nil),
		zap.String("static_dir", staticDir),
	)

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
