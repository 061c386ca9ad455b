package progress_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vlourenco/treinoapp/internal/progress"
)

func TestComputeStreakEmptyHistory(t *testing.T) {
	result := progress.ComputeStreak(nil, progress.NewSchedule(nil), dayOf(t, "2025-06-06"))

	if result.CurrentStreak != 0 || result.LongestStreak != 0 || result.TotalWorkoutDays != 0 {
		t.Errorf("empty history: got current=%d longest=%d total=%d, want all zero",
			result.CurrentStreak, result.LongestStreak, result.TotalWorkoutDays)
	}
	if result.LastWorkoutDay != nil {
		t.Errorf("LastWorkoutDay = %v, want nil", result.LastWorkoutDay)
	}
	if result.IsActiveToday {
		t.Error("IsActiveToday = true, want false")
	}
}

func TestComputeStreakConsecutiveDays(t *testing.T) {
	// Three consecutive days up to and including today.
	today := dayOf(t, "2025-06-06")
	days := []progress.DayKey{today - 2, today - 1, today}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", result.CurrentStreak)
	}
	if result.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", result.LongestStreak)
	}
	if !result.IsActiveToday {
		t.Error("IsActiveToday = false, want true")
	}
	if result.LastWorkoutDay == nil || *result.LastWorkoutDay != today {
		t.Errorf("LastWorkoutDay = %v, want %v", result.LastWorkoutDay, today)
	}
}

func TestComputeStreakFiveConsecutiveDays(t *testing.T) {
	today := dayOf(t, "2025-06-10")
	days := []progress.DayKey{today - 4, today - 3, today - 2, today - 1, today}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", result.CurrentStreak)
	}
	if result.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5", result.LongestStreak)
	}
	if result.TotalWorkoutDays != 5 {
		t.Errorf("TotalWorkoutDays = %d, want 5", result.TotalWorkoutDays)
	}
}

func TestComputeStreakGapBreaksChain(t *testing.T) {
	// Today and three days ago with nothing in between. Under an
	// unrestricted schedule the two skipped days break the chain, leaving
	// today as a fresh one-day streak.
	today := dayOf(t, "2025-06-10")
	days := []progress.DayKey{today - 3, today}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
	}
	if result.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", result.LongestStreak)
	}
	if result.TotalWorkoutDays != 2 {
		t.Errorf("TotalWorkoutDays = %d, want 2", result.TotalWorkoutDays)
	}
	if !result.IsActiveToday {
		t.Error("IsActiveToday = false, want true")
	}
}

func TestComputeStreakRestDaysSurvive(t *testing.T) {
	// Schedule: Monday, Wednesday, Friday. Completions on exactly those
	// days of one week. The Tuesday and Thursday gaps are rest days, so the
	// streak runs through the whole week.
	schedule := progress.NewSchedule([]int{1, 3, 5})
	monday := dayOf(t, "2025-06-02")
	wednesday := dayOf(t, "2025-06-04")
	friday := dayOf(t, "2025-06-06")

	result := progress.ComputeStreak([]progress.DayKey{monday, wednesday, friday}, schedule, friday)

	if result.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", result.CurrentStreak)
	}
	if result.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", result.LongestStreak)
	}
}

func TestComputeStreakMissedScheduledDayBreaks(t *testing.T) {
	// Same Monday/Wednesday/Friday schedule, but Wednesday was skipped.
	schedule := progress.NewSchedule([]int{1, 3, 5})
	monday := dayOf(t, "2025-06-02")
	friday := dayOf(t, "2025-06-06")

	result := progress.ComputeStreak([]progress.DayKey{monday, friday}, schedule, friday)

	if result.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
	}
	if result.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", result.LongestStreak)
	}
}

func TestComputeStreakStaleStreakIsDead(t *testing.T) {
	// Last workout long before today under an unrestricted schedule.
	today := dayOf(t, "2025-06-20")
	days := []progress.DayKey{today - 10, today - 9, today - 8}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", result.CurrentStreak)
	}
	if result.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", result.LongestStreak)
	}
	if result.IsActiveToday {
		t.Error("IsActiveToday = true, want false")
	}
}

func TestComputeStreakSingleDay(t *testing.T) {
	today := dayOf(t, "2025-06-06")

	t.Run("alive", func(t *testing.T) {
		result := progress.ComputeStreak([]progress.DayKey{today}, progress.NewSchedule(nil), today)
		if result.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
		}
		if result.LongestStreak != 1 {
			t.Errorf("LongestStreak = %d, want 1", result.LongestStreak)
		}
	})

	t.Run("dead", func(t *testing.T) {
		result := progress.ComputeStreak([]progress.DayKey{today - 5}, progress.NewSchedule(nil), today)
		if result.CurrentStreak != 0 {
			t.Errorf("CurrentStreak = %d, want 0", result.CurrentStreak)
		}
		if result.LongestStreak != 1 {
			t.Errorf("LongestStreak = %d, want 1", result.LongestStreak)
		}
	})
}

func TestComputeStreakDeduplicatesDays(t *testing.T) {
	// Multiple sessions on the same day count as one.
	today := dayOf(t, "2025-06-06")
	days := []progress.DayKey{today, today, today - 1, today - 1, today - 1}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", result.CurrentStreak)
	}
	if result.TotalWorkoutDays != 2 {
		t.Errorf("TotalWorkoutDays = %d, want 2", result.TotalWorkoutDays)
	}
}

func TestComputeStreakUnsortedInput(t *testing.T) {
	today := dayOf(t, "2025-06-06")
	days := []progress.DayKey{today - 1, today, today - 2}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", result.CurrentStreak)
	}
}

func TestComputeStreakClampsFutureCompletions(t *testing.T) {
	// A completion newer than the reported "today" must not kill the
	// streak; today clamps up to the newest completion instead.
	today := dayOf(t, "2025-06-06")
	days := []progress.DayKey{today, today + 1}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", result.CurrentStreak)
	}
	if !result.IsActiveToday {
		t.Error("IsActiveToday = false, want true")
	}
}

func TestComputeStreakLongGapShortcut(t *testing.T) {
	// Gaps of a week or more always contain a scheduled day, even on a
	// sparse schedule.
	schedule := progress.NewSchedule([]int{1})
	monday := dayOf(t, "2025-06-02")
	nextNextMonday := monday + 14

	result := progress.ComputeStreak([]progress.DayKey{monday, nextNextMonday}, schedule, nextNextMonday)

	if result.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
	}

	// One week apart on a Monday-only schedule: the six days between are
	// all rest days, so the streak survives.
	nextMonday := monday + 7
	result = progress.ComputeStreak([]progress.DayKey{monday, nextMonday}, schedule, nextMonday)
	if result.CurrentStreak != 2 {
		t.Errorf("CurrentStreak across one-week gap = %d, want 2", result.CurrentStreak)
	}
}

func TestComputeStreakLongestInMiddle(t *testing.T) {
	today := dayOf(t, "2025-06-20")
	days := []progress.DayKey{
		// A four-day run two weeks back.
		today - 14, today - 13, today - 12, today - 11,
		// A fresh two-day run ending today.
		today - 1, today,
	}

	result := progress.ComputeStreak(days, progress.NewSchedule(nil), today)

	if result.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", result.CurrentStreak)
	}
	if result.LongestStreak != 4 {
		t.Errorf("LongestStreak = %d, want 4", result.LongestStreak)
	}
	if result.TotalWorkoutDays != 6 {
		t.Errorf("TotalWorkoutDays = %d, want 6", result.TotalWorkoutDays)
	}
}

// streakHistory is a completion history used by the property-style tests
// below, which assert relations that must hold for any input rather than
// exact numbers.
type streakHistory struct {
	name     string
	days     []progress.DayKey
	schedule progress.Schedule
	today    progress.DayKey
}

func streakHistories(t *testing.T) []streakHistory {
	t.Helper()
	today := dayOf(t, "2025-06-20")
	monday := dayOf(t, "2025-06-02")
	return []streakHistory{
		{"consecutive run", []progress.DayKey{today - 2, today - 1, today}, progress.NewSchedule(nil), today},
		{"broken run", []progress.DayKey{today - 14, today - 13, today - 12, today - 11, today - 1, today}, progress.NewSchedule(nil), today},
		{"stale run", []progress.DayKey{today - 10, today - 9, today - 8}, progress.NewSchedule(nil), today},
		{"rest day schedule", []progress.DayKey{monday, monday + 2, monday + 4}, progress.NewSchedule([]int{1, 3, 5}), monday + 4},
		{"single day", []progress.DayKey{today}, progress.NewSchedule(nil), today},
	}
}

func TestComputeStreakIdempotent(t *testing.T) {
	for _, h := range streakHistories(t) {
		t.Run(h.name, func(t *testing.T) {
			first := progress.ComputeStreak(h.days, h.schedule, h.today)
			second := progress.ComputeStreak(h.days, h.schedule, h.today)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("repeated computation differs (-first +second):\n%s", diff)
			}

			// Listing every completion twice must not change anything either.
			doubled := append(slices.Clone(h.days), h.days...)
			redundant := progress.ComputeStreak(doubled, h.schedule, h.today)
			if diff := cmp.Diff(first, redundant); diff != "" {
				t.Errorf("duplicated input changes result (-first +duplicated):\n%s", diff)
			}
		})
	}
}

func TestComputeStreakLongestCoversCurrent(t *testing.T) {
	for _, h := range streakHistories(t) {
		t.Run(h.name, func(t *testing.T) {
			result := progress.ComputeStreak(h.days, h.schedule, h.today)
			if result.LongestStreak < result.CurrentStreak {
				t.Errorf("LongestStreak = %d is below CurrentStreak = %d",
					result.LongestStreak, result.CurrentStreak)
			}
		})
	}
}

func TestComputeStreakFillingGapsNeverShrinks(t *testing.T) {
	// A workout on a day that previously had none can only help the streak.
	for _, h := range streakHistories(t) {
		t.Run(h.name, func(t *testing.T) {
			base := progress.ComputeStreak(h.days, h.schedule, h.today)
			for day := slices.Min(h.days); day <= h.today; day++ {
				if slices.Contains(h.days, day) {
					continue
				}
				grown := progress.ComputeStreak(append(slices.Clone(h.days), day), h.schedule, h.today)
				if grown.CurrentStreak < base.CurrentStreak {
					t.Errorf("completing day %d dropped CurrentStreak from %d to %d",
						day, base.CurrentStreak, grown.CurrentStreak)
				}
				if grown.LongestStreak < base.LongestStreak {
					t.Errorf("completing day %d dropped LongestStreak from %d to %d",
						day, base.LongestStreak, grown.LongestStreak)
				}
			}
		})
	}
}
