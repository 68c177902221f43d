package domain

import (
	"context"
	"time"
)

// interface for fetching reservation records from the booking backend
type ReservationProvider interface {
	GetByDateRange(ctx context.Context, propertyIDs []string, from, to time.Time, limit int) ([]Reservation, error)
}

// interface for fetching the active property list
type PropertyProvider interface {
	GetActive(ctx context.Context) ([]Property, error)
}

// interface for the open service-request count, passed through
// unmodified into AnalyticsResult.PendingRequests
type ServiceRequestProvider interface {
	CountPending(ctx context.Context) (int, error)
}

// interface for storing and serving computed analytics snapshots
type SnapshotRepository interface {
	Store(ctx context.Context, snapshot AnalyticsSnapshot) error
	Latest(ctx context.Context, selector PeriodSelector) (*AnalyticsSnapshot, error)
	History(ctx context.Context, selector PeriodSelector, limit int) ([]AnalyticsSnapshot, error)
}
