// internal/server/router.go
package server

import (
	"context"
	"net/http"
	"time"

	apperrors "dygs-jobs/internal/common/errors"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/ratelimit"

	da "dygs-jobs/internal/handlers/download-archive"
	ga "dygs-jobs/internal/handlers/get-application"
	lp "dygs-jobs/internal/handlers/list-positions"
	sa "dygs-jobs/internal/handlers/submit-application"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers are the API endpoints the router mounts.
type Handlers struct {
	ListPositions     gin.HandlerFunc
	SubmitApplication gin.HandlerFunc
	GetApplication    gin.HandlerFunc
	DownloadArchive   gin.HandlerFunc
}

type Options struct {
	Logger  logger.Logger
	Limiter ratelimit.Limiter
	// Ready reports whether the storage backend is reachable.
	Ready func(ctx context.Context) error
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	errs := apperrors.NewErrorHandler(log)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(recovery(errs), requestLogger(log), requestMetrics(), cors.New(corsConfig()))

	router.NoRoute(func(c *gin.Context) {
		errs.Respond(c, apperrors.NewRouteNotFoundError(c.Request.URL.Path))
	})
	router.NoMethod(func(c *gin.Context) {
		errs.Respond(c, apperrors.NewMethodNotAllowedError(c.Request.Method))
	})

	router.GET(lp.Route, h.ListPositions)
	router.POST(sa.Route, rateLimit(opts.Limiter, errs), h.SubmitApplication)
	router.GET(ga.Route, h.GetApplication)
	router.GET(da.Route, h.DownloadArchive)

	// preflight requests carrying an Origin are answered by the CORS middleware
	for _, route := range []string{lp.Route, sa.Route, da.Route} {
		router.OPTIONS(route, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/ready", func(c *gin.Context) {
		if opts.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Ready(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"error":  err.Error(),
					"time":   time.Now().Format(time.RFC3339),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.OptionsResponseStatusCode = http.StatusOK
	return config
}
