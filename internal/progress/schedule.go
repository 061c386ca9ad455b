package progress

import "time"

// Schedule is the set of weekdays a user plans to train on. The zero value
// and the empty set both mean unrestricted: every day counts as a training
// day.
type Schedule struct {
	days map[time.Weekday]bool
}

// NewSchedule builds a schedule from weekday indices (0 = Sunday through
// 6 = Saturday). Out-of-range values are dropped silently so a stale client
// cannot poison the streak computation.
func NewSchedule(weekdays []int) Schedule {
	days := make(map[time.Weekday]bool, len(weekdays))
	for _, weekday := range weekdays {
		if weekday >= 0 && weekday <= 6 {
			days[time.Weekday(weekday)] = true
		}
	}
	return Schedule{days: days}
}

// Unrestricted reports whether no weekday restriction is configured.
func (s Schedule) Unrestricted() bool {
	return len(s.days) == 0
}

// IsScheduled reports whether day is a training day under this schedule.
func (s Schedule) IsScheduled(day DayKey) bool {
	return s.IsScheduledWeekday(day.Weekday())
}

// IsScheduledWeekday reports whether the weekday is a training day.
func (s Schedule) IsScheduledWeekday(weekday time.Weekday) bool {
	if s.Unrestricted() {
		return true
	}
	return s.days[weekday]
}

// Weekdays returns the configured weekday indices in ascending order, or the
// full week when the schedule is unrestricted.
func (s Schedule) Weekdays() []int {
	weekdays := make([]int, 0, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		if s.IsScheduledWeekday(weekday) {
			weekdays = append(weekdays, int(weekday))
		}
	}
	return weekdays
}
