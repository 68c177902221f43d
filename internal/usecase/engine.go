package usecase

import (
	"math"
	"sort"

	"staymetrics/internal/domain"
)

// Composite score weights: relative revenue and occupancy dominate,
// average stay contributes the remainder.
const (
	scoreWeightRevenue   = 0.4
	scoreWeightOccupancy = 0.4
	scoreWeightStay      = 0.2
)

// AnalyticsInput carries everything the engine needs for one run. The
// reservation slices are expected to already be scoped to their
// windows by the data-fetching collaborator.
type AnalyticsInput struct {
	Period          domain.PeriodRange
	Current         []domain.Reservation
	Previous        []domain.Reservation
	Properties      []domain.Property
	PendingRequests int
}

// ComputeAnalytics derives the full analytics result from raw inputs.
// It is a pure function: no I/O, no shared state, identical inputs
// yield identical output. All divisions are guarded, so empty
// collections and zero-length windows degrade to zero-valued metrics
// instead of failing.
func ComputeAnalytics(input AnalyticsInput) *domain.AnalyticsResult {
	propertyCount := len(input.Properties)

	current := aggregateWindow(input.Current, propertyCount, input.Period.Current.LengthInDays)
	previous := aggregateWindow(input.Previous, propertyCount, input.Period.Previous.LengthInDays)

	byProperty := aggregateByProperty(input.Current, input.Properties, input.Period.Current.LengthInDays)
	scoreAndRank(byProperty, current)

	return &domain.AnalyticsResult{
		Period:          input.Period,
		Current:         current,
		Previous:        previous,
		Trends:          compareTotals(current, previous),
		PropertyCount:   propertyCount,
		PendingRequests: input.PendingRequests,
		ByProperty:      byProperty,
		ByChannel:       aggregateByChannel(input.Current),
	}
}

// aggregateWindow folds counted reservations into portfolio totals for
// one window. Total available nights assume uniform availability:
// property count times window length, not actual calendar data.
func aggregateWindow(reservations []domain.Reservation, propertyCount, windowDays int) domain.WindowTotals {
	totals := domain.WindowTotals{
		TotalNights: propertyCount * windowDays,
	}

	for _, r := range reservations {
		if !r.Counted() {
			continue
		}
		totals.Revenue += r.TotalPrice
		totals.OccupiedNights += r.Nights()
		totals.ReservationCount++
	}

	if totals.TotalNights > 0 {
		totals.OccupancyRate = float64(totals.OccupiedNights) / float64(totals.TotalNights) * 100
		totals.RevPAN = totals.Revenue / float64(totals.TotalNights)
	}
	if totals.OccupiedNights > 0 {
		totals.ADR = totals.Revenue / float64(totals.OccupiedNights)
	}
	if totals.ReservationCount > 0 {
		totals.AvgStay = float64(totals.OccupiedNights) / float64(totals.ReservationCount)
	}

	return totals
}

// aggregateByProperty groups counted reservations by property. Every
// property in the input list appears exactly once, including those
// with zero reservations. The occupancy denominator here is the
// single-property one: the window length itself.
func aggregateByProperty(reservations []domain.Reservation, properties []domain.Property, windowDays int) []domain.PropertyMetrics {
	grouped := make(map[string][]domain.Reservation, len(properties))
	for _, r := range reservations {
		if !r.Counted() {
			continue
		}
		grouped[r.PropertyID] = append(grouped[r.PropertyID], r)
	}

	metrics := make([]domain.PropertyMetrics, 0, len(properties))
	for _, p := range properties {
		m := domain.PropertyMetrics{
			ID:          p.ID,
			Name:        p.Name,
			TotalNights: windowDays,
		}

		for _, r := range grouped[p.ID] {
			m.Revenue += r.TotalPrice
			m.OccupiedNights += r.Nights()
			m.ReservationCount++
		}

		if m.TotalNights > 0 {
			m.OccupancyRate = float64(m.OccupiedNights) / float64(m.TotalNights) * 100
		}
		if m.ReservationCount > 0 {
			m.AvgStay = float64(m.OccupiedNights) / float64(m.ReservationCount)
		}

		metrics = append(metrics, m)
	}

	return metrics
}

// aggregateByChannel sums revenue and count per free-text channel key,
// sorted by descending revenue with the name as a stable secondary key.
func aggregateByChannel(reservations []domain.Reservation) []domain.ChannelMetrics {
	grouped := make(map[string]*domain.ChannelMetrics)
	for _, r := range reservations {
		if !r.Counted() {
			continue
		}
		key := r.Channel()
		if grouped[key] == nil {
			grouped[key] = &domain.ChannelMetrics{Name: key}
		}
		grouped[key].Revenue += r.TotalPrice
		grouped[key].Count++
	}

	channels := make([]domain.ChannelMetrics, 0, len(grouped))
	for _, c := range grouped {
		channels = append(channels, *c)
	}
	sort.Slice(channels, func(i, j int) bool {
		if channels[i].Revenue != channels[j].Revenue {
			return channels[i].Revenue > channels[j].Revenue
		}
		return channels[i].Name < channels[j].Name
	})

	return channels
}

// trendPercent computes the signed percentage delta between a current
// and a previous value. A metric appearing from nothing reads as +100;
// two zeros read as flat.
func trendPercent(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// compareTotals applies trendPercent to each paired aggregate metric.
// Trends exist only at portfolio level, never on the breakdowns.
func compareTotals(current, previous domain.WindowTotals) domain.TrendSummary {
	return domain.TrendSummary{
		Revenue:          trendPercent(current.Revenue, previous.Revenue),
		OccupancyRate:    trendPercent(current.OccupancyRate, previous.OccupancyRate),
		ADR:              trendPercent(current.ADR, previous.ADR),
		RevPAN:           trendPercent(current.RevPAN, previous.RevPAN),
		AvgStay:          trendPercent(current.AvgStay, previous.AvgStay),
		ReservationCount: trendPercent(float64(current.ReservationCount), float64(previous.ReservationCount)),
	}
}

// scoreAndRank assigns each property its composite score against the
// portfolio totals and orders the slice by descending score, breaking
// ties by ascending property id for reproducible output.
func scoreAndRank(metrics []domain.PropertyMetrics, portfolio domain.WindowTotals) {
	for i := range metrics {
		metrics[i].Score = performanceScore(metrics[i], portfolio)
	}
	sort.Slice(metrics, func(i, j int) bool {
		if metrics[i].Score != metrics[j].Score {
			return metrics[i].Score > metrics[j].Score
		}
		return metrics[i].ID < metrics[j].ID
	})
}

// performanceScore blends a property's relative revenue, occupancy
// rate, and average stay into a 0-100 composite. The occupancy
// sub-score inherits the uncapped rate from the aggregator; the
// revenue and stay sub-scores are each capped at 100 before weighting.
func performanceScore(m domain.PropertyMetrics, portfolio domain.WindowTotals) int {
	revenueScore := math.Min(100, m.Revenue/math.Max(portfolio.Revenue*0.5, 1)*100)
	occupancyScore := m.OccupancyRate
	stayScore := math.Min(100, m.AvgStay/math.Max(portfolio.AvgStay*2, 1)*100)

	score := math.Round(revenueScore*scoreWeightRevenue +
		occupancyScore*scoreWeightOccupancy +
		stayScore*scoreWeightStay)

	return int(math.Min(100, score))
}
