package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 4, 12, 0, 0, 0, time.UTC)
}

func TestComputeMetrics(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewAnalyticsUseCase(tracker, logger.Nop(), domain.MetricsOptions{})
	uc.now = fixedNow

	wantRange := domain.DateRange{
		StartDate: time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC),
	}
	created := []domain.Issue{
		{Key: "PB-1", Assignee: "Ana", Created: time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC)},
		{Key: "PB-2", Created: time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)},
	}
	resolved := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	completed := []domain.Issue{
		{Key: "PB-1", Assignee: "Ana", Created: time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC), ResolutionDate: &resolved},
	}
	wip := []domain.Issue{{Status: "In Progress"}, {Status: "In Progress"}}

	tracker.On("SearchCreated", mock.Anything, "NTRVSTA", wantRange).Return(created, nil)
	tracker.On("SearchCompleted", mock.Anything, "NTRVSTA", wantRange).Return(completed, nil)
	tracker.On("SearchWorkInProgress", mock.Anything, "NTRVSTA").Return(wip, nil)

	report, err := uc.ComputeMetrics(context.Background(), "NTRVSTA", "7d")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TicketsCreated)
	assert.Equal(t, 1, report.TicketsCompleted)
	assert.Equal(t, 50, report.CompletionRate)
	assert.Equal(t, []domain.StatusCount{{Status: "In Progress", Count: 2}}, report.WIPByStatus)
	tracker.AssertExpectations(t)
}

func TestComputeMetrics_PrimaryQueryFailureAborts(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewAnalyticsUseCase(tracker, logger.Nop(), domain.MetricsOptions{})
	uc.now = fixedNow

	upstream := domain.NewUpstreamError("tracker", http.StatusBadGateway, "search failed")
	tracker.On("SearchCreated", mock.Anything, "NTRVSTA", mock.Anything).Return(nil, upstream)

	_, err := uc.ComputeMetrics(context.Background(), "NTRVSTA", "30d")
	require.Error(t, err)

	// The upstream status survives wrapping so the edge can propagate it.
	status, ok := domain.UpstreamStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, status)
	tracker.AssertNotCalled(t, "SearchCompleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeMetrics_CompletedQueryFailureAborts(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewAnalyticsUseCase(tracker, logger.Nop(), domain.MetricsOptions{})
	uc.now = fixedNow

	tracker.On("SearchCreated", mock.Anything, "NTRVSTA", mock.Anything).Return([]domain.Issue{}, nil)
	tracker.On("SearchCompleted", mock.Anything, "NTRVSTA", mock.Anything).
		Return(nil, domain.NewUpstreamError("tracker", http.StatusUnauthorized, "search failed"))

	_, err := uc.ComputeMetrics(context.Background(), "NTRVSTA", "30d")
	require.Error(t, err)
	status, _ := domain.UpstreamStatus(err)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestComputeMetrics_WIPFailureDegradesToEmptyBreakdown(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewAnalyticsUseCase(tracker, logger.Nop(), domain.MetricsOptions{})
	uc.now = fixedNow

	tracker.On("SearchCreated", mock.Anything, "NTRVSTA", mock.Anything).Return([]domain.Issue{{Key: "PB-1"}}, nil)
	tracker.On("SearchCompleted", mock.Anything, "NTRVSTA", mock.Anything).Return([]domain.Issue{}, nil)
	tracker.On("SearchWorkInProgress", mock.Anything, "NTRVSTA").
		Return(nil, domain.NewUpstreamError("tracker", http.StatusServiceUnavailable, "search failed"))

	report, err := uc.ComputeMetrics(context.Background(), "NTRVSTA", "30d")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TicketsCreated)
	assert.Empty(t, report.WIPByStatus)
}
