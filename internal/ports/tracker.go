package ports

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/domain"
)

// TrackerGateway is the Issue Query Facade: fixed-shape searches against the
// external issue tracker, each returning a normalized collection capped at a
// single bounded page. Queries are independent and read-only.
type TrackerGateway interface {
	// SearchCreated returns the project's issues created within the range,
	// newest first, capped at 200.
	SearchCreated(ctx context.Context, project string, dr domain.DateRange) ([]domain.Issue, error)

	// SearchCompleted returns the project's Done issues resolved within the
	// range, newest-resolved first, capped at 200.
	SearchCompleted(ctx context.Context, project string, dr domain.DateRange) ([]domain.Issue, error)

	// SearchWorkInProgress returns issues in any active state (excluding
	// Done, Backlog, To Do, Cancelled, Canceled), ordered by state name,
	// capped at 200.
	SearchWorkInProgress(ctx context.Context, project string) ([]domain.Issue, error)

	// SearchBoard returns assigned In Progress / Testing issues for the board
	// view, most recently updated first, capped at 50.
	SearchBoard(ctx context.Context, project string) ([]domain.BoardTicket, error)

	// Myself returns the authenticated tracker account, used for
	// diagnostics.
	Myself(ctx context.Context) (*domain.TrackerUser, error)
}
