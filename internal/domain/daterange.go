package domain

import (
	"time"
)

// DateRange is a pair of UTC calendar dates with StartDate <= EndDate. Both
// carry a zero time-of-day component.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

const isoDate = "2006-01-02"

// StartISO returns the start bound as an ISO calendar date.
func (r DateRange) StartISO() string { return r.StartDate.Format(isoDate) }

// EndISO returns the end bound as an ISO calendar date.
func (r DateRange) EndISO() string { return r.EndDate.Format(isoDate) }

// Days returns the number of days between the bounds, never less than 1 so
// that rate math stays defined for same-day ranges.
func (r DateRange) Days() int {
	d := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
	if d < 1 {
		return 1
	}
	return d
}

// Weeks returns the range length in weeks, never less than 1.
func (r DateRange) Weeks() float64 {
	w := float64(r.Days()) / 7
	if w < 1 {
		return 1
	}
	return w
}

// ResolveDateRange maps a range keyword to concrete bounds relative to now.
// The function is total: unrecognized or empty keywords fall back to the 30d
// behavior by deliberate policy rather than erroring. The end bound is always
// today's UTC date.
func ResolveDateRange(keyword string, now time.Time) DateRange {
	now = now.UTC()
	end := truncateToDate(now)

	var start time.Time
	switch keyword {
	case "7d":
		start = truncateToDate(now.AddDate(0, 0, -7))
	case "14d":
		start = truncateToDate(now.AddDate(0, 0, -14))
	case "90d":
		start = truncateToDate(now.AddDate(0, 0, -90))
	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "quarter":
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start = time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
	default: // "30d" and everything else
		start = truncateToDate(now.AddDate(0, 0, -30))
	}

	return DateRange{StartDate: start, EndDate: end}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
