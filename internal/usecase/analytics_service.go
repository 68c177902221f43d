package usecase

import (
	"context"
	"fmt"
	"time"

	"staymetrics/internal/domain"
	"staymetrics/pkg/logger"
	"staymetrics/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// AnalyticsService orchestrates one analytics run: it resolves the
// period windows, fans out to the data providers, feeds the pure
// engine, and stores the resulting snapshot. The engine itself stays
// synchronous and side-effect-free; all I/O lives here.
type AnalyticsService struct {
	reservations domain.ReservationProvider
	properties   domain.PropertyProvider
	requests     domain.ServiceRequestProvider
	snapshots    domain.SnapshotRepository
	logger       *logger.Logger
	metrics      *metrics.Metrics
	fetchLimit   int
	now          func() time.Time
}

// NewAnalyticsService creates a new analytics service. now is the
// reference-instant source; pass nil for the wall clock.
func NewAnalyticsService(
	reservations domain.ReservationProvider,
	properties domain.PropertyProvider,
	requests domain.ServiceRequestProvider,
	snapshots domain.SnapshotRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	fetchLimit int,
	now func() time.Time,
) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		reservations: reservations,
		properties:   properties,
		requests:     requests,
		snapshots:    snapshots,
		logger:       logger,
		metrics:      metrics,
		fetchLimit:   fetchLimit,
		now:          now,
	}
}

// ComputeForPeriod runs the full pipeline for one period selector and
// returns the freshly computed result. The snapshot repository is
// updated as a side effect so Latest can serve it later.
func (s *AnalyticsService) ComputeForPeriod(ctx context.Context, selector domain.PeriodSelector) (*domain.AnalyticsResult, error) {
	start := time.Now()
	s.metrics.IncAnalyticsInProgress()
	defer s.metrics.DecAnalyticsInProgress()

	log := s.logger.WithContext(ctx)
	log.WithField("period", selector).Info("Starting analytics computation")

	period := domain.ResolvePeriod(selector, s.now())

	input, err := s.fetchInputs(ctx, period)
	if err != nil {
		s.metrics.RecordAnalyticsRun(string(selector), "failed", time.Since(start))
		return nil, fmt.Errorf("failed to fetch analytics inputs: %w", err)
	}
	input.Period = period

	result := ComputeAnalytics(*input)

	snapshot := domain.AnalyticsSnapshot{
		Selector:   selector,
		Result:     *result,
		ComputedAt: s.now(),
	}
	if err := s.snapshots.Store(ctx, snapshot); err != nil {
		log.WithError(err).Warn("Failed to store analytics snapshot")
	}

	duration := time.Since(start)
	s.metrics.RecordAnalyticsRun(string(selector), "success", duration)
	s.metrics.RecordReservationsProcessed("current", result.Current.ReservationCount)
	s.metrics.RecordReservationsProcessed("previous", result.Previous.ReservationCount)

	log.WithFields(map[string]any{
		"period":           selector,
		"duration":         duration,
		"properties":       result.PropertyCount,
		"reservations":     result.Current.ReservationCount,
		"revenue":          result.Current.Revenue,
		"occupancy_rate":   result.Current.OccupancyRate,
		"pending_requests": result.PendingRequests,
	}).Info("Analytics computation completed")

	return result, nil
}

// fetchInputs gathers the four engine inputs. The property list is
// fetched first since the reservation queries are scoped to it; the
// two reservation windows and the pending-request count are unrelated
// queries and run concurrently.
func (s *AnalyticsService) fetchInputs(ctx context.Context, period domain.PeriodRange) (*AnalyticsInput, error) {
	log := s.logger.WithContext(ctx)

	properties, err := s.properties.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("property fetch failed: %w", err)
	}

	propertyIDs := make([]string, len(properties))
	for i, p := range properties {
		propertyIDs[i] = p.ID
	}

	input := &AnalyticsInput{Properties: properties}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		input.Current, err = s.reservations.GetByDateRange(gctx, propertyIDs,
			period.Current.StartDate, period.Current.EndDate, s.fetchLimit)
		if err != nil {
			return fmt.Errorf("current-window reservation fetch failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		input.Previous, err = s.reservations.GetByDateRange(gctx, propertyIDs,
			period.Previous.StartDate, period.Previous.EndDate, s.fetchLimit)
		if err != nil {
			return fmt.Errorf("previous-window reservation fetch failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		input.PendingRequests, err = s.requests.CountPending(gctx)
		if err != nil {
			return fmt.Errorf("pending-request fetch failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.WithFields(map[string]any{
		"properties":            len(properties),
		"current_reservations":  len(input.Current),
		"previous_reservations": len(input.Previous),
		"pending_requests":      input.PendingRequests,
	}).Info("Analytics inputs fetched")

	return input, nil
}

// LatestSnapshot returns the most recently stored snapshot for a
// selector, or nil when none has been computed yet.
func (s *AnalyticsService) LatestSnapshot(ctx context.Context, selector domain.PeriodSelector) (*domain.AnalyticsSnapshot, error) {
	snapshot, err := s.snapshots.Latest(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snapshot, nil
}

// SnapshotHistory returns up to limit stored snapshots for a selector,
// newest first.
func (s *AnalyticsService) SnapshotHistory(ctx context.Context, selector domain.PeriodSelector, limit int) ([]domain.AnalyticsSnapshot, error) {
	history, err := s.snapshots.History(ctx, selector, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", err)
	}
	return history, nil
}
