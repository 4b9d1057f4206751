package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/ports"
)

// BoardUseCase serves the active board view and the stale-ticket subset of
// it.
type BoardUseCase struct {
	tracker            ports.TrackerGateway
	log                logger.Logger
	staleThresholdDays int
	now                func() time.Time
}

// NewBoardUseCase creates the board use case. staleThresholdDays is the
// number of idle days after which a board ticket counts as stale.
func NewBoardUseCase(tracker ports.TrackerGateway, log logger.Logger, staleThresholdDays int) *BoardUseCase {
	return &BoardUseCase{
		tracker:            tracker,
		log:                log,
		staleThresholdDays: staleThresholdDays,
		now:                time.Now,
	}
}

// GetBoard returns the project's active board tickets.
func (uc *BoardUseCase) GetBoard(ctx context.Context, project string) ([]domain.BoardTicket, error) {
	tickets, err := uc.tracker.SearchBoard(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("board query: %w", err)
	}
	return tickets, nil
}

// GetStaleTickets returns board tickets idle for longer than the threshold,
// most stale first.
func (uc *BoardUseCase) GetStaleTickets(ctx context.Context, project string) ([]domain.StaleTicket, error) {
	tickets, err := uc.GetBoard(ctx, project)
	if err != nil {
		return nil, err
	}

	today := uc.now().UTC().Truncate(24 * time.Hour)
	stale := make([]domain.StaleTicket, 0)
	for _, ticket := range tickets {
		updated, err := time.Parse("2006-01-02", ticket.Updated)
		if err != nil {
			uc.log.Warn(ctx, "skipping ticket with unparseable update date", map[string]interface{}{
				"key":     ticket.Key,
				"updated": ticket.Updated,
			})
			continue
		}
		daysStale := int(today.Sub(updated).Hours() / 24)
		if daysStale > uc.staleThresholdDays {
			stale = append(stale, domain.StaleTicket{BoardTicket: ticket, DaysStale: daysStale})
		}
	}

	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].DaysStale > stale[j].DaysStale
	})
	return stale, nil
}
