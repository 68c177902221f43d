package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staymetrics/internal/domain"
	"staymetrics/internal/infrastructure"
	"staymetrics/internal/usecase"
	"staymetrics/pkg/logger"
	"staymetrics/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = metrics.New()

type stubReservations struct {
	reservations []domain.Reservation
}

func (s *stubReservations) GetByDateRange(ctx context.Context, propertyIDs []string, from, to time.Time, limit int) ([]domain.Reservation, error) {
	return s.reservations, nil
}

type stubProperties struct {
	properties []domain.Property
}

func (s *stubProperties) GetActive(ctx context.Context) ([]domain.Property, error) {
	return s.properties, nil
}

type stubRequests struct {
	count int
}

func (s *stubRequests) CountPending(ctx context.Context) (int, error) {
	return s.count, nil
}

func setupRouter(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.New("error")
	snapshots := infrastructure.NewSnapshotRepository(10, log)

	now := func() time.Time {
		return time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)
	}

	svc := usecase.NewAnalyticsService(
		&stubReservations{reservations: []domain.Reservation{
			{PropertyID: "p1", CheckIn: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), CheckOut: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), TotalPrice: 600, Status: "booked", Source: "Airbnb"},
			{PropertyID: "p2", CheckIn: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), CheckOut: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), TotalPrice: 150, Status: "booked"},
		}},
		&stubProperties{properties: []domain.Property{
			{ID: "p1", Name: "Seaside Loft"},
			{ID: "p2", Name: "Garden Villa"},
		}},
		&stubRequests{count: 5},
		snapshots,
		log, testMetrics, 500, now)

	handlers := NewHTTPHandlers(svc, log, testMetrics)
	router := NewHTTPRouter(handlers, log, testMetrics, 10*time.Second)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestGetAnalytics(t *testing.T) {
	server := setupRouter(t)

	status, body := getJSON(t, server.URL+"/api/v1/analytics?period=month")
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["request_id"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)

	current, ok := data["current"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 750.0, current["revenue"])
	assert.Equal(t, 4.0, current["occupiedNights"])

	assert.Equal(t, 2.0, data["propertyCount"])
	assert.Equal(t, 5.0, data["pendingRequests"])

	byProperty, ok := data["byProperty"].([]any)
	require.True(t, ok)
	assert.Len(t, byProperty, 2)

	byChannel, ok := data["byChannel"].([]any)
	require.True(t, ok)
	require.Len(t, byChannel, 2)
	first := byChannel[0].(map[string]any)
	assert.Equal(t, "Airbnb", first["name"])
}

func TestGetPropertyRanking(t *testing.T) {
	server := setupRouter(t)

	status, body := getJSON(t, server.URL+"/api/v1/analytics/properties?period=month&limit=1")
	require.Equal(t, http.StatusOK, status)

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, 2.0, body["total"])

	top := data[0].(map[string]any)
	assert.Equal(t, "p1", top["id"])
}

func TestGetPropertyRanking_InvalidLimit(t *testing.T) {
	server := setupRouter(t)

	status, body := getJSON(t, server.URL+"/api/v1/analytics/properties?limit=nope")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid parameters", body["error"])
}

func TestGetChannelBreakdown(t *testing.T) {
	server := setupRouter(t)

	status, body := getJSON(t, server.URL+"/api/v1/analytics/channels")
	require.Equal(t, http.StatusOK, status)

	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestGetSnapshot(t *testing.T) {
	server := setupRouter(t)

	// No computation has run yet.
	status, _ := getJSON(t, server.URL+"/api/v1/analytics/snapshot?period=year")
	assert.Equal(t, http.StatusNotFound, status)

	// A full analytics request stores a snapshot as a side effect.
	status, _ = getJSON(t, server.URL+"/api/v1/analytics?period=year")
	require.Equal(t, http.StatusOK, status)

	status, body := getJSON(t, server.URL+"/api/v1/analytics/snapshot?period=year")
	require.Equal(t, http.StatusOK, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "year", data["selector"])
}

func TestHealthCheck(t *testing.T) {
	server := setupRouter(t)

	status, body := getJSON(t, server.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "staymetrics", body["service"])
}
