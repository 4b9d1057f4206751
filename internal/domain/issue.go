package domain

import (
	"time"
)

// Issue is a read-only snapshot of a tracker work item, normalized from the
// tracker's raw search response. Assignee and Creator are empty when the
// tracker reports no person; the aggregation layer substitutes the
// "Unassigned" sentinel at counting time.
type Issue struct {
	Key            string     `json:"key"`
	Summary        string     `json:"summary"`
	Status         string     `json:"status"`
	Assignee       string     `json:"assignee,omitempty"`
	Creator        string     `json:"creator,omitempty"`
	Created        time.Time  `json:"created"`
	ResolutionDate *time.Time `json:"resolutionDate,omitempty"`
	Labels         []string   `json:"labels,omitempty"`
}

// Resolved reports whether the issue carries a resolution timestamp at or
// after its creation. Records violating the resolutiondate >= created
// invariant are treated as unresolved for duration math.
func (i Issue) Resolved() bool {
	return i.ResolutionDate != nil && !i.ResolutionDate.Before(i.Created)
}

// DaysOpen returns the time between creation and resolution in fractional
// days, or 0 when the issue is not resolved.
func (i Issue) DaysOpen() float64 {
	if !i.Resolved() {
		return 0
	}
	return i.ResolutionDate.Sub(i.Created).Hours() / 24
}

// TrackerUser identifies the authenticated tracker account, used by the
// diagnostics endpoint.
type TrackerUser struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

// BoardTicket is an active board item (In Progress / Testing) as shown on the
// board view.
type BoardTicket struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
	Updated  string `json:"updated"`
	URL      string `json:"url"`
}

// StaleTicket is a board ticket that has had no activity for longer than the
// configured threshold.
type StaleTicket struct {
	BoardTicket
	DaysStale int `json:"daysStale"`
}
