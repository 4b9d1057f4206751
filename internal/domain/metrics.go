package domain

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Sentinel labels substituted for absent people and states.
const (
	UnassignedSentinel    = "Unassigned"
	UnknownStatusSentinel = "Unknown"
)

// StatusCount is one entry of the work-in-progress breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// WeeklyBucket is one calendar week (Monday start) of created/completed
// counts.
type WeeklyBucket struct {
	Week      string `json:"week"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// MetricsReport is the flat analytics object computed per request. Nothing in
// it is persisted; every call recomputes from the tracker's result sets.
type MetricsReport struct {
	TicketsCreated      int            `json:"ticketsCreated"`
	TicketsCompleted    int            `json:"ticketsCompleted"`
	CompletionRate      int            `json:"completionRate"`
	AvgTimeOpen         int            `json:"avgTimeOpen"`
	AvgVelocity         float64        `json:"avgVelocity"`
	CreatedByAssignee   map[string]int `json:"createdByAssignee"`
	CompletedByAssignee map[string]int `json:"completedByAssignee"`
	TicketsByLabel      map[string]int `json:"ticketsByLabel"`
	WeeklyData          []WeeklyBucket `json:"weeklyData"`
	WIPByStatus         []StatusCount  `json:"wipByStatus"`
}

// MetricsOptions tunes aggregation edge-case behavior.
type MetricsOptions struct {
	// ResolvedOnlyAverage switches the avgTimeOpen denominator from the full
	// completed-set size to only those completed issues carrying a resolution
	// date. The default (false) matches the historically observed behavior,
	// which understates the average when resolution dates are missing.
	ResolvedOnlyAverage bool
}

// BuildMetricsReport aggregates the three normalized issue collections over a
// resolved date range. Pure and synchronous: no I/O, no shared state, and the
// only failure modes (empty sets, divide-by-zero) are handled by explicit
// guards.
func BuildMetricsReport(created, completed, wip []Issue, dr DateRange, opts MetricsOptions) MetricsReport {
	report := MetricsReport{
		TicketsCreated:      len(created),
		TicketsCompleted:    len(completed),
		CreatedByAssignee:   map[string]int{},
		CompletedByAssignee: map[string]int{},
		TicketsByLabel:      map[string]int{},
	}

	if report.TicketsCreated > 0 {
		// Rounded to nearest; may exceed 100 when items created before the
		// range complete inside it.
		report.CompletionRate = int(math.Round(float64(report.TicketsCompleted) / float64(report.TicketsCreated) * 100))
	}

	var totalDaysOpen float64
	resolvedCount := 0
	for _, issue := range completed {
		if issue.Resolved() {
			totalDaysOpen += issue.DaysOpen()
			resolvedCount++
		}
	}
	denominator := report.TicketsCompleted
	if opts.ResolvedOnlyAverage {
		denominator = resolvedCount
	}
	if denominator > 0 {
		report.AvgTimeOpen = int(math.Round(totalDaysOpen / float64(denominator)))
	}

	report.AvgVelocity = math.Round(float64(report.TicketsCompleted)/dr.Weeks()*10) / 10

	for _, issue := range created {
		report.CreatedByAssignee[assigneeOrSentinel(issue)]++
		for _, label := range issue.Labels {
			report.TicketsByLabel[NormalizeLabel(label)]++
		}
	}
	for _, issue := range completed {
		report.CompletedByAssignee[assigneeOrSentinel(issue)]++
	}

	report.WeeklyData = bucketByWeek(created, completed, dr)
	report.WIPByStatus = countByStatus(wip)

	return report
}

func assigneeOrSentinel(issue Issue) string {
	if issue.Assignee == "" {
		return UnassignedSentinel
	}
	return issue.Assignee
}

// NormalizeLabel produces the display form of a free-text label: first rune
// uppercased, remainder lowercased. Labels differing only in case collapse
// into one histogram key. Idempotent.
func NormalizeLabel(label string) string {
	if label == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(first)) + strings.ToLower(label[size:])
}

// countByStatus groups WIP issues by state name and orders the breakdown by
// descending count. The sort is stable, so equal counts keep first-seen order.
func countByStatus(wip []Issue) []StatusCount {
	counts := map[string]int{}
	var order []string
	for _, issue := range wip {
		status := issue.Status
		if status == "" {
			status = UnknownStatusSentinel
		}
		if _, seen := counts[status]; !seen {
			order = append(order, status)
		}
		counts[status]++
	}

	breakdown := make([]StatusCount, 0, len(order))
	for _, status := range order {
		breakdown = append(breakdown, StatusCount{Status: status, Count: counts[status]})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Count > breakdown[j].Count
	})
	return breakdown
}

// bucketByWeek emits one entry per Monday-start calendar week overlapping the
// range, in chronological order. Windows are half-open [weekStart,
// weekStart+7d) over full UTC timestamps, so every instant is counted exactly
// once and late-day events on the final weekday are not dropped.
func bucketByWeek(created, completed []Issue, dr DateRange) []WeeklyBucket {
	var buckets []WeeklyBucket
	for weekStart := mondayOnOrBefore(dr.StartDate); !weekStart.After(dr.EndDate); weekStart = weekStart.AddDate(0, 0, 7) {
		weekEnd := weekStart.AddDate(0, 0, 7)
		bucket := WeeklyBucket{Week: weekStart.Format("Jan 2")}
		for _, issue := range created {
			if inWindow(issue.Created, weekStart, weekEnd) {
				bucket.Created++
			}
		}
		for _, issue := range completed {
			if issue.ResolutionDate != nil && inWindow(*issue.ResolutionDate, weekStart, weekEnd) {
				bucket.Completed++
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func mondayOnOrBefore(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
