package router

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"user-directory/api"
	"user-directory/internal/adapter/gin/handler"
	"user-directory/internal/adapter/gin/middleware"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// SwaggerSpecPath is where the OpenAPI document is served.
const SwaggerSpecPath = "/openapi/users.swagger.json"

// Options holds the optional pieces of the router.
type Options struct {
	// RateLimiter enables per-client limiting when non-nil.
	RateLimiter middleware.Limiter
	// AllowedOrigins lists CORS origins; "*" or empty allows all.
	AllowedOrigins []string
	// StaticDir, when set, serves a single page app for unmatched GET requests.
	StaticDir string
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(userHandler *handler.UserHandler, opts Options, log *zap.Logger) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	router.Use(middleware.RateLimiter(opts.RateLimiter, log))

	// Health check endpoint
	router.GET("/", userHandler.Health)

	router.GET("/users", userHandler.ListUsers)
	router.POST("/users", userHandler.CreateUser)
	router.GET("/users/:id", userHandler.GetUser)
	router.GET("/search", userHandler.SearchUsers)

	// API documentation
	router.GET(SwaggerSpecPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", api.SwaggerJSON)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(SwaggerSpecPath))))

	router.NoRoute(noRoute(opts.StaticDir))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// noRoute serves files from staticDir, falling back to index.html so client-side
// routes resolve. Without staticDir every unknown route is a JSON 404.
func noRoute(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if staticDir == "" || (method != http.MethodGet && method != http.MethodHead) {
			c.JSON(http.StatusNotFound, handler.ErrorResponse{
				Error:   apperrors.CodeNotFound,
				Message: "route not found",
			})
			return
		}

		// Clean against "/" first so the path cannot climb out of staticDir.
		target := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
		if serveFile(c, target) {
			return
		}
		if !serveFile(c, filepath.Join(staticDir, "index.html")) {
			c.JSON(http.StatusNotFound, handler.ErrorResponse{
				Error:   apperrors.CodeNotFound,
				Message: "route not found",
			})
		}
	}
}

// serveFile writes a regular file without http.ServeFile's redirects and
// ".." rejection, which act on the raw request path rather than name.
func serveFile(c *gin.Context, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}
