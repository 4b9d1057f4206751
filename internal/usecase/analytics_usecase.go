package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/ports"
)

// AnalyticsUseCase computes the per-request metrics report: resolve the date
// range, run the three tracker queries, aggregate in memory. Nothing is
// cached or persisted.
type AnalyticsUseCase struct {
	tracker ports.TrackerGateway
	log     logger.Logger
	opts    domain.MetricsOptions
	now     func() time.Time
}

// NewAnalyticsUseCase creates the analytics use case.
func NewAnalyticsUseCase(tracker ports.TrackerGateway, log logger.Logger, opts domain.MetricsOptions) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		tracker: tracker,
		log:     log,
		opts:    opts,
		now:     time.Now,
	}
}

// ComputeMetrics builds a MetricsReport for the project over the keyword
// range. The created and completed queries are primary: their failures abort
// the report with the upstream status. The WIP query is supplementary: its
// failure degrades to an empty breakdown.
func (uc *AnalyticsUseCase) ComputeMetrics(ctx context.Context, project, rangeKeyword string) (*domain.MetricsReport, error) {
	dr := domain.ResolveDateRange(rangeKeyword, uc.now())

	created, err := uc.tracker.SearchCreated(ctx, project, dr)
	if err != nil {
		return nil, fmt.Errorf("created query: %w", err)
	}

	completed, err := uc.tracker.SearchCompleted(ctx, project, dr)
	if err != nil {
		return nil, fmt.Errorf("completed query: %w", err)
	}

	wip, err := uc.tracker.SearchWorkInProgress(ctx, project)
	if err != nil {
		uc.log.Warn(ctx, "work-in-progress query failed, continuing without breakdown", map[string]interface{}{
			"project": project,
			"error":   err.Error(),
		})
		wip = nil
	}

	report := domain.BuildMetricsReport(created, completed, wip, dr, uc.opts)
	return &report, nil
}
