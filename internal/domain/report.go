package domain

// Priority of an extracted action item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriority reports whether p is one of the three recognized levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ActionItem is one task extracted from a meeting transcript by the
// completion service, normalized and ready for review.
type ActionItem struct {
	ID       string   `json:"id"`
	Task     string   `json:"task"`
	Assignee string   `json:"assignee"`
	Priority Priority `json:"priority"`
	Selected bool     `json:"selected"`
}

// WBRSubsection groups related bullet updates under a category heading.
type WBRSubsection struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// WBRProjectUpdate holds one project's subsections for the week.
type WBRProjectUpdate struct {
	ProjectName string          `json:"projectName"`
	Subsections []WBRSubsection `json:"subsections"`
}

// WBRPriorities lists a project's upcoming priorities.
type WBRPriorities struct {
	ProjectName string   `json:"projectName"`
	Items       []string `json:"items"`
}

// WBRDocument is the structured weekly business review produced from raw
// notes by the completion service.
type WBRDocument struct {
	Title              string             `json:"title"`
	Overview           string             `json:"overview"`
	ProjectUpdates     []WBRProjectUpdate `json:"projectUpdates"`
	UpcomingPriorities []WBRPriorities    `json:"upcomingPriorities"`
}

// ReminderResult is the per-assignee outcome of a reminder fan-out.
type ReminderResult struct {
	Assignee string `json:"assignee"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}
