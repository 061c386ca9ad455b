package progress_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vlourenco/treinoapp/internal/progress"
)

func TestScheduleUnrestricted(t *testing.T) {
	for name, schedule := range map[string]progress.Schedule{
		"zero value":   {},
		"nil input":    progress.NewSchedule(nil),
		"empty input":  progress.NewSchedule([]int{}),
		"only invalid": progress.NewSchedule([]int{-1, 7, 99}),
	} {
		t.Run(name, func(t *testing.T) {
			if !schedule.Unrestricted() {
				t.Error("Unrestricted() = false, want true")
			}
			for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
				if !schedule.IsScheduledWeekday(weekday) {
					t.Errorf("IsScheduledWeekday(%s) = false, want true", weekday)
				}
			}
			if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6}, schedule.Weekdays()); diff != "" {
				t.Errorf("Weekdays() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScheduleConfigured(t *testing.T) {
	// Monday, Wednesday, Friday with noise that must be dropped silently.
	schedule := progress.NewSchedule([]int{5, 1, 3, -2, 12, 3})

	if schedule.Unrestricted() {
		t.Error("Unrestricted() = true, want false")
	}
	if diff := cmp.Diff([]int{1, 3, 5}, schedule.Weekdays()); diff != "" {
		t.Errorf("Weekdays() mismatch (-want +got):\n%s", diff)
	}

	monday := dayOf(t, "2025-06-02")
	tuesday := dayOf(t, "2025-06-03")
	if !schedule.IsScheduled(monday) {
		t.Error("IsScheduled(monday) = false, want true")
	}
	if schedule.IsScheduled(tuesday) {
		t.Error("IsScheduled(tuesday) = true, want false")
	}
}
