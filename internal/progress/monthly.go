package progress

import (
	"math"
	"time"
)

// MonthlyCompletion summarises training volume for one calendar month.
type MonthlyCompletion struct {
	DistinctDaysTrained   int `json:"distinctDaysTrained"`
	TotalPossibleDays     int `json:"totalPossibleDays"`
	CompletionRatePercent int `json:"completionRatePercent"`
}

// ComputeMonthlyCompletion counts the distinct days trained within the given
// month against the days the schedule made available. The rate is rounded
// half-up to a whole percent and clamped to 100 for users who also trained on
// rest days.
func ComputeMonthlyCompletion(days []DayKey, schedule Schedule, year int, month time.Month) MonthlyCompletion {
	var completion MonthlyCompletion

	trained := make(map[DayKey]struct{})
	for _, day := range days {
		y, m, _ := day.Date()
		if y == year && m == month {
			trained[day] = struct{}{}
		}
	}
	completion.DistinctDaysTrained = len(trained)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for i := range daysInMonth {
		if schedule.IsScheduledWeekday(first.AddDate(0, 0, i).Weekday()) {
			completion.TotalPossibleDays++
		}
	}

	if completion.TotalPossibleDays > 0 {
		rate := float64(completion.DistinctDaysTrained) / float64(completion.TotalPossibleDays) * 100
		completion.CompletionRatePercent = min(int(math.Round(rate)), 100)
	}

	return completion
}
