package progress

import "slices"

// StreakResult describes a user's workout streak at a point in time. It is
// derived from the full completion history on every query and never stored.
type StreakResult struct {
	CurrentStreak    int     `json:"currentStreak"`
	LongestStreak    int     `json:"longestStreak"`
	LastWorkoutDay   *DayKey `json:"lastWorkoutDay"`
	IsActiveToday    bool    `json:"isActiveToday"`
	TotalWorkoutDays int     `json:"totalWorkoutDays"`
	ScheduledDays    []int   `json:"scheduledDays"`
}

// ComputeStreak derives the streak numbers from the days the user completed a
// workout on. The input needs no ordering or deduplication; multiple workouts
// on the same day count once.
func ComputeStreak(days []DayKey, schedule Schedule, today DayKey) StreakResult {
	result := StreakResult{ScheduledDays: schedule.Weekdays()}
	if len(days) == 0 {
		return result
	}

	unique := slices.Clone(days)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	result.TotalWorkoutDays = len(unique)
	last := unique[len(unique)-1]
	result.LastWorkoutDay = &last

	// A clock reporting "today" before the newest completion would make every
	// streak look broken; clamp instead of trusting it.
	if today < last {
		today = last
	}
	result.IsActiveToday = last == today

	// Current streak: dead when a scheduled day sits between the last workout
	// and today, otherwise walk backwards from the newest day until a
	// scheduled day was skipped between two workouts.
	if !hasMissedScheduledDay(today, last, schedule) {
		result.CurrentStreak = 1
		for i := len(unique) - 1; i > 0; i-- {
			if hasMissedScheduledDay(unique[i], unique[i-1], schedule) {
				break
			}
			result.CurrentStreak++
		}
	}

	// Longest streak: walk forwards, resetting the run whenever a scheduled
	// day was skipped between two workouts.
	run := 1
	result.LongestStreak = 1
	for i := 1; i < len(unique); i++ {
		if hasMissedScheduledDay(unique[i], unique[i-1], schedule) {
			run = 1
		} else {
			run++
		}
		result.LongestStreak = max(result.LongestStreak, run)
	}

	return result
}

// hasMissedScheduledDay reports whether any day strictly between older and
// newer is a scheduled training day. A streak survives a gap only when the
// whole gap consists of rest days.
func hasMissedScheduledDay(newer, older DayKey, schedule Schedule) bool {
	// A gap of seven or more full days covers every weekday, and the
	// effective schedule is never empty.
	if newer-older > 7 {
		return true
	}
	for day := older + 1; day < newer; day++ {
		if schedule.IsScheduled(day) {
			return true
		}
	}
	return false
}
