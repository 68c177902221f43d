package domain

import "time"

// WindowTotals are the portfolio-level aggregates for one period
// window. Rates are 0-100 percentages; the occupancy rate is a
// faithful pass-through of the source data and is deliberately not
// clamped at 100, so overlapping bookings can push it above.
type WindowTotals struct {
	Revenue          float64 `json:"revenue"`
	OccupiedNights   int     `json:"occupiedNights"`
	TotalNights      int     `json:"totalNights"`
	OccupancyRate    float64 `json:"occupancyRate"`
	ADR              float64 `json:"adr"`
	RevPAN           float64 `json:"revPAN"`
	AvgStay          float64 `json:"avgStay"`
	ReservationCount int     `json:"reservationCount"`
}

// TrendSummary holds the signed percentage delta for each paired
// metric between the current and previous windows.
type TrendSummary struct {
	Revenue          int `json:"revenue"`
	OccupancyRate    int `json:"occupancyRate"`
	ADR              int `json:"adr"`
	RevPAN           int `json:"revPAN"`
	AvgStay          int `json:"avgStay"`
	ReservationCount int `json:"reservationCount"`
}

// PropertyMetrics is the current-window breakdown for one property.
// TotalNights equals the window length: the model assumes every listed
// property is nominally available every day of the window.
type PropertyMetrics struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Revenue          float64 `json:"revenue"`
	OccupiedNights   int     `json:"occupiedNights"`
	TotalNights      int     `json:"totalNights"`
	OccupancyRate    float64 `json:"occupancyRate"`
	ReservationCount int     `json:"reservationCount"`
	AvgStay          float64 `json:"avgStay"`
	Score            int     `json:"score"`
}

// ChannelMetrics is the current-window breakdown for one sales
// channel. Channels are an open string-keyed set; there is no
// occupancy concept at channel granularity.
type ChannelMetrics struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// AnalyticsResult is the full output contract consumed by rendering
// collaborators. It is recomputed from scratch on every invocation;
// callers must not mutate it in place.
type AnalyticsResult struct {
	Period          PeriodRange       `json:"period"`
	Current         WindowTotals      `json:"current"`
	Previous        WindowTotals      `json:"previous"`
	Trends          TrendSummary      `json:"trends"`
	PropertyCount   int               `json:"propertyCount"`
	PendingRequests int               `json:"pendingRequests"`
	ByProperty      []PropertyMetrics `json:"byProperty"`
	ByChannel       []ChannelMetrics  `json:"byChannel"`
}

// AnalyticsSnapshot wraps a computed result with bookkeeping for the
// snapshot repository.
type AnalyticsSnapshot struct {
	Selector   PeriodSelector  `json:"selector"`
	Result     AnalyticsResult `json:"result"`
	ComputedAt time.Time       `json:"computedAt"`
}
