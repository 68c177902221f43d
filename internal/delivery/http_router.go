package delivery

import (
	"time"

	"staymetrics/internal/delivery/middleware"
	"staymetrics/pkg/logger"
	"staymetrics/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	timeout  time.Duration
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, timeout time.Duration) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.timeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		// Analytics endpoints
		analytics := v1.Group("/analytics")
		{
			analytics.GET("", r.handlers.GetAnalytics)
			analytics.GET("/properties", r.handlers.GetPropertyRanking)
			analytics.GET("/channels", r.handlers.GetChannelBreakdown)
			analytics.GET("/snapshot", r.handlers.GetSnapshot)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
