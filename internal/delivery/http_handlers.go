package delivery

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"staymetrics/internal/domain"
	"staymetrics/internal/usecase"
	"staymetrics/pkg/logger"
	"staymetrics/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handles HTTP requests
type HTTPHandlers struct {
	analyticsService *usecase.AnalyticsService
	logger           *logger.Logger
	metrics          *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	analyticsService *usecase.AnalyticsService,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		analyticsService: analyticsService,
		logger:           logger,
		metrics:          metrics,
	}
}

// GetAnalytics computes and returns the full analytics result for the
// requested period selector.
func (h *HTTPHandlers) GetAnalytics(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	selector := domain.ParsePeriodSelector(c.DefaultQuery("period", "month"))

	result, err := h.analyticsService.ComputeForPeriod(ctx, selector)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analytics", "500", time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Failed to compute analytics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to compute analytics",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analytics", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"data":       result,
		"request_id": requestID,
	})
}

// GetPropertyRanking returns the ranked per-property breakdown for the
// requested period, optionally truncated by limit.
func (h *HTTPHandlers) GetPropertyRanking(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	selector := domain.ParsePeriodSelector(c.DefaultQuery("period", "month"))

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			h.metrics.RecordHTTPRequest("GET", "/analytics/properties", "400", time.Since(start))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid parameters",
				"message":    "limit must be a non-negative integer",
				"request_id": requestID,
			})
			return
		}
		limit = parsed
	}

	result, err := h.analyticsService.ComputeForPeriod(ctx, selector)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analytics/properties", "500", time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Failed to compute property ranking")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to compute analytics",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	ranked := result.ByProperty
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	h.metrics.RecordHTTPRequest("GET", "/analytics/properties", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"data":       ranked,
		"total":      len(result.ByProperty),
		"period":     selector,
		"request_id": requestID,
	})
}

// GetChannelBreakdown returns the per-channel revenue breakdown for
// the requested period.
func (h *HTTPHandlers) GetChannelBreakdown(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	selector := domain.ParsePeriodSelector(c.DefaultQuery("period", "month"))

	result, err := h.analyticsService.ComputeForPeriod(ctx, selector)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analytics/channels", "500", time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Failed to compute channel breakdown")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to compute analytics",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analytics/channels", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"data":       result.ByChannel,
		"period":     selector,
		"request_id": requestID,
	})
}

// GetSnapshot serves the most recently computed snapshot without
// triggering a fresh computation.
func (h *HTTPHandlers) GetSnapshot(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	selector := domain.ParsePeriodSelector(c.DefaultQuery("period", "month"))

	snapshot, err := h.analyticsService.LatestSnapshot(ctx, selector)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analytics/snapshot", "500", time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Failed to load snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to load snapshot",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	if snapshot == nil {
		h.metrics.RecordHTTPRequest("GET", "/analytics/snapshot", "404", time.Since(start))
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "No snapshot available",
			"message":    "no analytics computed yet for period " + string(selector),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analytics/snapshot", "200", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"data":       snapshot,
		"request_id": requestID,
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()

	apiInfo := gin.H{
		"api_version": "v1",
		"service":     "Portfolio Analytics Service",
		"version":     "1.0.0",
		"description": "Occupancy, revenue and pricing analytics for property portfolios",
		"endpoints": gin.H{
			"analytics": gin.H{
				"path":        "/api/v1/analytics",
				"description": "Full analytics result with trends, property ranking and channel breakdown",
				"parameters": gin.H{
					"period": "Optional: month | quarter | year (default: month)",
				},
				"example": "/api/v1/analytics?period=quarter",
			},
			"properties": gin.H{
				"path":        "/api/v1/analytics/properties",
				"description": "Per-property metrics ranked by composite performance score",
				"parameters": gin.H{
					"period": "Optional: month | quarter | year (default: month)",
					"limit":  "Optional: truncate ranking to N entries",
				},
				"example": "/api/v1/analytics/properties?period=month&limit=10",
			},
			"channels": gin.H{
				"path":        "/api/v1/analytics/channels",
				"description": "Per-channel revenue and reservation counts, descending by revenue",
				"parameters": gin.H{
					"period": "Optional: month | quarter | year (default: month)",
				},
				"example": "/api/v1/analytics/channels?period=year",
			},
			"snapshot": gin.H{
				"path":        "/api/v1/analytics/snapshot",
				"description": "Most recently computed result without triggering recomputation",
				"parameters": gin.H{
					"period": "Optional: month | quarter | year (default: month)",
				},
				"example": "/api/v1/analytics/snapshot?period=month",
			},
		},
		"metrics_glossary": gin.H{
			"adr":           "Average Daily Rate (revenue / occupied nights)",
			"revPAN":        "Revenue per Available Night (revenue / total available nights)",
			"occupancyRate": "Occupied nights / available nights x 100",
			"avgStay":       "Mean nights per counted reservation",
			"score":         "0-100 weighted blend of relative revenue, occupancy and stay length",
		},
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/api/v1", "200", time.Since(start))
	c.JSON(http.StatusOK, apiInfo)
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "staymetrics",
		"version":    "1.0.0",
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/health", "200", time.Since(start))
	c.JSON(http.StatusOK, health)
}
