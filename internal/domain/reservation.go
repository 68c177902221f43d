package domain

import (
	"math"
	"strings"
	"time"
)

// DefaultChannel is the fallback bucket for reservations without a
// channel label.
const DefaultChannel = "Direct"

// Reservation statuses that are excluded from every metric.
const (
	StatusCancelled = "CANCELLED"
	StatusCanceled  = "CANCELED"
	StatusNoShow    = "NO_SHOW"
)

// Reservation is a raw booking record as returned by the reservation
// provider. Dates carry date-only semantics; time-of-day is ignored.
type Reservation struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	Source     string    `json:"source"`
	SourceName string    `json:"sourceName"`
}

// NormalizeStatus upper-cases a status and collapses separators so
// "no-show", "No Show" and "NO_SHOW" compare equal.
func NormalizeStatus(status string) string {
	s := strings.ToUpper(strings.TrimSpace(status))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Counted reports whether the reservation participates in metrics.
// Cancelled and no-show reservations are invisible downstream.
func (r Reservation) Counted() bool {
	switch NormalizeStatus(r.Status) {
	case StatusCancelled, StatusCanceled, StatusNoShow:
		return false
	}
	return true
}

// Nights returns the stayed night count: ceil(checkOut - checkIn) in
// days, floored at 0. A missing date on either side yields 0, so a
// malformed record contributes nothing to occupancy while its price
// still counts toward revenue.
func (r Reservation) Nights() int {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return 0
	}
	nights := math.Ceil(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return int(nights)
}

// Channel returns the sales channel key for the breakdown: source,
// falling back to sourceName, falling back to "Direct".
func (r Reservation) Channel() string {
	if c := strings.TrimSpace(r.Source); c != "" {
		return c
	}
	if c := strings.TrimSpace(r.SourceName); c != "" {
		return c
	}
	return DefaultChannel
}
