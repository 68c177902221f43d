package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staymetrics/pkg/logger"
	"staymetrics/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = metrics.New()

func newTestClient(reservationURL, propertyURL, serviceRequestURL string) *ProviderClient {
	return NewProviderClient(reservationURL, propertyURL, serviceRequestURL,
		5*time.Second, 100, logger.New("error"), testMetrics)
}

func TestProviderClient_GetByDateRange(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"from":        r.URL.Query().Get("from"),
			"to":          r.URL.Query().Get("to"),
			"limit":       r.URL.Query().Get("limit"),
			"propertyIds": r.URL.Query().Get("propertyIds"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reservations":[
			{"id":"r1","propertyId":"p1","checkIn":"2025-06-02T00:00:00Z","checkOut":"2025-06-05T00:00:00Z","totalPrice":600,"status":"booked","source":"Airbnb"},
			{"id":"r2","propertyId":"p2","totalPrice":250,"status":"cancelled"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", "")

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	reservations, err := client.GetByDateRange(context.Background(), []string{"p1", "p2"}, from, to, 500)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", gotQuery["from"])
	assert.Equal(t, "2025-06-18", gotQuery["to"])
	assert.Equal(t, "500", gotQuery["limit"])
	assert.Equal(t, "p1,p2", gotQuery["propertyIds"])

	require.Len(t, reservations, 2)
	assert.Equal(t, "p1", reservations[0].PropertyID)
	assert.Equal(t, 600.0, reservations[0].TotalPrice)
	assert.True(t, reservations[0].Counted())
	assert.Equal(t, 3, reservations[0].Nights())
	assert.False(t, reservations[1].Counted())
	assert.True(t, reservations[1].CheckIn.IsZero())
}

func TestProviderClient_GetActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"properties":[{"id":"p1","name":"Seaside Loft"},{"id":"p2","name":"Garden Villa"}]}`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL, "")

	properties, err := client.GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "Seaside Loft", properties[0].Name)
}

func TestProviderClient_CountPending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":7}`))
	}))
	defer server.Close()

	client := newTestClient("", "", server.URL)

	count, err := client.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestProviderClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient("", server.URL, "")

	_, err := client.GetActive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestProviderClient_NotConfigured(t *testing.T) {
	client := newTestClient("", "", "")

	_, err := client.GetActive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestProviderClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": oops`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL, "")

	_, err := client.GetActive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
