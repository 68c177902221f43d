package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriod_Month(t *testing.T) {
	now := time.Date(2025, time.June, 18, 14, 30, 0, 0, time.UTC)

	pr := ResolvePeriod(PeriodMonth, now)

	// Current window runs from the first of the month to "now", not to
	// month end, so trends compare like-for-like elapsed time.
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), pr.Current.StartDate)
	assert.Equal(t, time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC), pr.Current.EndDate)
	assert.Equal(t, 17, pr.Current.LengthInDays)

	// Previous window is the full prior calendar month.
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), pr.Previous.StartDate)
	assert.Equal(t, time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC), pr.Previous.EndDate)
	assert.Equal(t, 30, pr.Previous.LengthInDays)
}

func TestResolvePeriod_MonthAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

	pr := ResolvePeriod(PeriodMonth, now)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), pr.Previous.StartDate)
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), pr.Previous.EndDate)
}

func TestResolvePeriod_Quarter(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		currentStart  time.Time
		previousStart time.Time
		previousEnd   time.Time
	}{
		{
			name:          "mid Q2",
			now:           time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC),
			currentStart:  time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			previousStart: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			previousEnd:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "Q1 reaches into prior year",
			now:           time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
			currentStart:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			previousStart: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
			previousEnd:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "last month of Q4",
			now:           time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
			currentStart:  time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
			previousStart: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
			previousEnd:   time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := ResolvePeriod(PeriodQuarter, tt.now)
			assert.Equal(t, tt.currentStart, pr.Current.StartDate)
			assert.Equal(t, tt.previousStart, pr.Previous.StartDate)
			assert.Equal(t, tt.previousEnd, pr.Previous.EndDate)
		})
	}
}

func TestResolvePeriod_Year(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	pr := ResolvePeriod(PeriodYear, now)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), pr.Current.StartDate)
	assert.Equal(t, 73, pr.Current.LengthInDays)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), pr.Previous.StartDate)
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), pr.Previous.EndDate)
	// 2024 is a leap year.
	assert.Equal(t, 365, pr.Previous.LengthInDays)
}

func TestResolvePeriod_FirstDayHasZeroLength(t *testing.T) {
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

	pr := ResolvePeriod(PeriodMonth, now)

	assert.Equal(t, 0, pr.Current.LengthInDays)
	assert.Equal(t, pr.Current.StartDate, pr.Current.EndDate)
}

func TestParsePeriodSelector(t *testing.T) {
	assert.Equal(t, PeriodMonth, ParsePeriodSelector("month"))
	assert.Equal(t, PeriodQuarter, ParsePeriodSelector("quarter"))
	assert.Equal(t, PeriodYear, ParsePeriodSelector("year"))
	assert.Equal(t, PeriodMonth, ParsePeriodSelector(""))
	assert.Equal(t, PeriodMonth, ParsePeriodSelector("weekly"))
}
