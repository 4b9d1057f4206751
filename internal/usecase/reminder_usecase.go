package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/ports"
)

// ReminderUseCase fans stale-ticket reminders out as one DM per assignee.
// Tracker display names resolve to messenger user IDs through an injected
// mapping; unknown assignees are reported in the results, never fatal.
type ReminderUseCase struct {
	messenger ports.Messenger
	log       logger.Logger
	userMap   map[string]string
}

// NewReminderUseCase creates the reminder use case.
func NewReminderUseCase(messenger ports.Messenger, log logger.Logger, userMap map[string]string) *ReminderUseCase {
	return &ReminderUseCase{
		messenger: messenger,
		log:       log,
		userMap:   userMap,
	}
}

// SendReminders groups tickets by assignee and sends each assignee one
// direct message listing their stale tickets. Results are returned in
// first-seen assignee order.
func (uc *ReminderUseCase) SendReminders(ctx context.Context, tickets []domain.StaleTicket) ([]domain.ReminderResult, error) {
	grouped := map[string][]domain.StaleTicket{}
	var order []string
	for _, ticket := range tickets {
		if _, seen := grouped[ticket.Assignee]; !seen {
			order = append(order, ticket.Assignee)
		}
		grouped[ticket.Assignee] = append(grouped[ticket.Assignee], ticket)
	}

	results := make([]domain.ReminderResult, 0, len(order))
	for _, assignee := range order {
		userID, ok := uc.userMap[assignee]
		if !ok {
			results = append(results, domain.ReminderResult{
				Assignee: assignee,
				Success:  false,
				Error:    "messenger user not found",
			})
			continue
		}

		message := buildReminderMessage(grouped[assignee])
		if _, err := uc.messenger.PostMessage(ctx, userID, message); err != nil {
			uc.log.Error(ctx, "reminder delivery failed", err, map[string]interface{}{
				"assignee": assignee,
			})
			results = append(results, domain.ReminderResult{
				Assignee: assignee,
				Success:  false,
				Error:    err.Error(),
			})
			continue
		}
		results = append(results, domain.ReminderResult{Assignee: assignee, Success: true})
	}
	return results, nil
}

func buildReminderMessage(tickets []domain.StaleTicket) string {
	var lines []string
	for _, t := range tickets {
		lines = append(lines, fmt.Sprintf("• *%s* - %s (%d days) → %s", t.Key, t.Summary, t.DaysStale, t.URL))
	}

	plural := ""
	if len(tickets) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Hey! 👋\n\nYou have *%d ticket%s* on the board with no updates for a while:\n\n%s\n\nNeed a hand? 🙌",
		len(tickets), plural, strings.Join(lines, "\n"))
}
