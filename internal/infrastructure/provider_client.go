package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"staymetrics/internal/domain"
	"staymetrics/pkg/logger"
	"staymetrics/pkg/metrics"

	"golang.org/x/time/rate"
)

// ProviderClient talks to the booking backend's REST API and
// implements the ReservationProvider, PropertyProvider and
// ServiceRequestProvider interfaces.
type ProviderClient struct {
	client            *http.Client
	reservationURL    string
	propertyURL       string
	serviceRequestURL string
	logger            *logger.Logger
	metrics           *metrics.Metrics
	rateLimiter       *rate.Limiter
}

// creates a new provider client
func NewProviderClient(reservationURL, propertyURL, serviceRequestURL string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *ProviderClient {
	return &ProviderClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		reservationURL:    reservationURL,
		propertyURL:       propertyURL,
		serviceRequestURL: serviceRequestURL,
		logger:            logger,
		metrics:           metrics,
		rateLimiter:       rate.NewLimiter(rate.Limit(ratePerSecond), 10),
	}
}

// GetByDateRange fetches reservations scoped to a property-id set and
// an inclusive date range, bounded by limit.
func (c *ProviderClient) GetByDateRange(ctx context.Context, propertyIDs []string, from, to time.Time, limit int) ([]domain.Reservation, error) {
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if len(propertyIDs) > 0 {
		params.Set("propertyIds", strings.Join(propertyIDs, ","))
	}

	var payload struct {
		Reservations []domain.Reservation `json:"reservations"`
	}
	if err := c.getJSON(ctx, "reservations", c.reservationURL, params, &payload); err != nil {
		return nil, err
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"from":    from.Format("2006-01-02"),
		"to":      to.Format("2006-01-02"),
		"records": len(payload.Reservations),
	}).Info("Fetched reservations")

	return payload.Reservations, nil
}

// GetActive fetches the active property list visible to the caller.
func (c *ProviderClient) GetActive(ctx context.Context) ([]domain.Property, error) {
	var payload struct {
		Properties []domain.Property `json:"properties"`
	}
	if err := c.getJSON(ctx, "properties", c.propertyURL, nil, &payload); err != nil {
		return nil, err
	}

	c.logger.WithContext(ctx).WithField("records", len(payload.Properties)).Info("Fetched properties")

	return payload.Properties, nil
}

// CountPending fetches the number of currently open service requests.
func (c *ProviderClient) CountPending(ctx context.Context) (int, error) {
	params := url.Values{}
	params.Set("status", "pending")

	var payload struct {
		Count int `json:"count"`
	}
	if err := c.getJSON(ctx, "service_requests", c.serviceRequestURL, params, &payload); err != nil {
		return 0, err
	}

	return payload.Count, nil
}

// getJSON performs one rate-limited GET against a provider endpoint
// and decodes the JSON body into out.
func (c *ProviderClient) getJSON(ctx context.Context, provider, baseURL string, params url.Values, out any) error {
	if baseURL == "" {
		c.metrics.RecordProviderFailure(provider, "not_configured")
		return fmt.Errorf("%s provider URL not configured", provider)
	}

	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordProviderFailure(provider, "rate_limit")
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	endpoint := baseURL
	if len(params) > 0 {
		endpoint = baseURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		c.metrics.RecordProviderFailure(provider, "request_creation")
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordProviderFailure(provider, "network_error")
		return fmt.Errorf("failed to fetch %s: %w", provider, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordProviderCall(provider, fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return fmt.Errorf("%s provider returned status %d", provider, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordProviderFailure(provider, "read_body")
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.RecordProviderFailure(provider, "json_parse")
		return fmt.Errorf("failed to parse %s response: %w", provider, err)
	}

	c.metrics.RecordProviderCall(provider, "success", duration)
	return nil
}
