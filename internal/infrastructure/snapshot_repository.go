package infrastructure

import (
	"context"
	"sync"

	"staymetrics/internal/domain"
	"staymetrics/pkg/logger"
)

// SnapshotRepository keeps computed analytics snapshots in memory,
// newest first per period selector, bounded by historySize. Implements
// domain.SnapshotRepository.
type SnapshotRepository struct {
	data        map[domain.PeriodSelector][]domain.AnalyticsSnapshot
	historySize int
	mutex       sync.RWMutex
	logger      *logger.Logger
}

// creates a new snapshot repository
func NewSnapshotRepository(historySize int, logger *logger.Logger) *SnapshotRepository {
	if historySize <= 0 {
		historySize = 1
	}
	return &SnapshotRepository{
		data:        make(map[domain.PeriodSelector][]domain.AnalyticsSnapshot),
		historySize: historySize,
		logger:      logger,
	}
}

func (r *SnapshotRepository) Store(ctx context.Context, snapshot domain.AnalyticsSnapshot) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	history := append([]domain.AnalyticsSnapshot{snapshot}, r.data[snapshot.Selector]...)
	if len(history) > r.historySize {
		history = history[:r.historySize]
	}
	r.data[snapshot.Selector] = history

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"period":      snapshot.Selector,
		"computed_at": snapshot.ComputedAt,
		"history":     len(history),
	}).Debug("Stored analytics snapshot")

	return nil
}

func (r *SnapshotRepository) Latest(ctx context.Context, selector domain.PeriodSelector) (*domain.AnalyticsSnapshot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	history := r.data[selector]
	if len(history) == 0 {
		return nil, nil
	}

	snapshot := history[0]
	return &snapshot, nil
}

func (r *SnapshotRepository) History(ctx context.Context, selector domain.PeriodSelector, limit int) ([]domain.AnalyticsSnapshot, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	history := r.data[selector]
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}

	out := make([]domain.AnalyticsSnapshot, len(history))
	copy(out, history)
	return out, nil
}
