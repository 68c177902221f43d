package domain

import "time"

// PeriodSelector is the coarse reporting period chosen by the caller.
type PeriodSelector string

const (
	PeriodMonth   PeriodSelector = "month"
	PeriodQuarter PeriodSelector = "quarter"
	PeriodYear    PeriodSelector = "year"
)

// ParsePeriodSelector maps a raw query value onto a selector, falling
// back to month for anything unrecognized.
func ParsePeriodSelector(s string) PeriodSelector {
	switch PeriodSelector(s) {
	case PeriodQuarter:
		return PeriodQuarter
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodMonth
	}
}

// PeriodWindow is a contiguous calendar date range. StartDate and
// EndDate are inclusive; LengthInDays is end minus start clamped to
// zero, so a window that starts and ends on the same day has length 0.
type PeriodWindow struct {
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	LengthInDays int       `json:"lengthInDays"`
}

// PeriodRange pairs the current reporting window with the equal-cadence
// window immediately preceding it, used for trend comparison.
type PeriodRange struct {
	Current  PeriodWindow `json:"current"`
	Previous PeriodWindow `json:"previous"`
}

// ResolvePeriod computes the current and previous windows for a
// selector relative to an injected reference instant. The current
// window always ends at the reference instant rather than the period
// end, so trend comparisons use like-for-like elapsed time. Pure date
// arithmetic; never fails.
func ResolvePeriod(selector PeriodSelector, now time.Time) PeriodRange {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var currentStart, previousStart, previousEnd time.Time

	switch selector {
	case PeriodQuarter:
		quarterMonth := time.Month((int(day.Month())-1)/3*3 + 1)
		currentStart = time.Date(day.Year(), quarterMonth, 1, 0, 0, 0, 0, day.Location())
		previousStart = currentStart.AddDate(0, -3, 0)
		previousEnd = currentStart.AddDate(0, 0, -1)
	case PeriodYear:
		currentStart = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		previousStart = currentStart.AddDate(-1, 0, 0)
		previousEnd = currentStart.AddDate(0, 0, -1)
	default:
		currentStart = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		previousStart = currentStart.AddDate(0, -1, 0)
		previousEnd = currentStart.AddDate(0, 0, -1)
	}

	return PeriodRange{
		Current:  newWindow(currentStart, day),
		Previous: newWindow(previousStart, previousEnd),
	}
}

func newWindow(start, end time.Time) PeriodWindow {
	days := daysBetween(start, end)
	if days < 0 {
		days = 0
	}
	return PeriodWindow{StartDate: start, EndDate: end, LengthInDays: days}
}

// daysBetween counts calendar days from start to end. Both dates are
// re-anchored in UTC so DST transitions cannot skew the count.
func daysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s) / (24 * time.Hour))
}
