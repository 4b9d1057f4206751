package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
)

func boardTicket(key, assignee, updated string) domain.BoardTicket {
	return domain.BoardTicket{
		Key:      key,
		Summary:  "summary " + key,
		Status:   "In Progress",
		Assignee: assignee,
		Updated:  updated,
		URL:      "https://example.atlassian.net/browse/" + key,
	}
}

func TestGetStaleTickets(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewBoardUseCase(tracker, logger.Nop(), 4)
	uc.now = fixedNow // 2026-02-04

	tracker.On("SearchBoard", mock.Anything, "NTRVSTA").Return([]domain.BoardTicket{
		boardTicket("PB-1", "Ana", "2026-02-03"),   // 1 day, fresh
		boardTicket("PB-2", "Bruno", "2026-01-25"), // 10 days
		boardTicket("PB-3", "Ana", "2026-01-31"),   // 4 days, at threshold, not over
		boardTicket("PB-4", "Carla", "2026-01-28"), // 7 days
		boardTicket("PB-5", "Dani", "unknown"),     // unparseable, skipped
	}, nil)

	stale, err := uc.GetStaleTickets(context.Background(), "NTRVSTA")
	require.NoError(t, err)

	require.Len(t, stale, 2)
	assert.Equal(t, "PB-2", stale[0].Key)
	assert.Equal(t, 10, stale[0].DaysStale)
	assert.Equal(t, "PB-4", stale[1].Key)
	assert.Equal(t, 7, stale[1].DaysStale)
}

func TestGetStaleTickets_EmptyBoard(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewBoardUseCase(tracker, logger.Nop(), 4)
	uc.now = fixedNow

	tracker.On("SearchBoard", mock.Anything, "NTRVSTA").Return([]domain.BoardTicket{}, nil)

	stale, err := uc.GetStaleTickets(context.Background(), "NTRVSTA")
	require.NoError(t, err)
	assert.NotNil(t, stale)
	assert.Empty(t, stale)
}

func TestGetStaleTickets_BoardFailurePropagates(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewBoardUseCase(tracker, logger.Nop(), 4)

	tracker.On("SearchBoard", mock.Anything, "NTRVSTA").
		Return(nil, domain.ErrCredentialsMissing)

	_, err := uc.GetStaleTickets(context.Background(), "NTRVSTA")
	assert.ErrorIs(t, err, domain.ErrCredentialsMissing)
}

func TestGetBoard_PassesThrough(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewBoardUseCase(tracker, logger.Nop(), 4)

	want := []domain.BoardTicket{boardTicket("PB-1", "Ana", "2026-02-03")}
	tracker.On("SearchBoard", mock.Anything, "ARC").Return(want, nil)

	got, err := uc.GetBoard(context.Background(), "ARC")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetStaleTickets_ThresholdIsConfigurable(t *testing.T) {
	tracker := new(mockTracker)
	uc := NewBoardUseCase(tracker, logger.Nop(), 1)
	uc.now = func() time.Time { return time.Date(2026, 2, 4, 23, 59, 0, 0, time.UTC) }

	tracker.On("SearchBoard", mock.Anything, "NTRVSTA").Return([]domain.BoardTicket{
		boardTicket("PB-1", "Ana", "2026-02-02"),
	}, nil)

	stale, err := uc.GetStaleTickets(context.Background(), "NTRVSTA")
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, 2, stale[0].DaysStale)
}
