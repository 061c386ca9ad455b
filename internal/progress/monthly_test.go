package progress_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vlourenco/treinoapp/internal/progress"
)

func TestComputeMonthlyCompletionUnrestricted(t *testing.T) {
	// Ten distinct training days in a 30-day month: 10/30 rounds to 33%.
	var days []progress.DayKey
	first := dayOf(t, "2025-06-01")
	for i := range 10 {
		days = append(days, first+progress.DayKey(i*2))
	}

	got := progress.ComputeMonthlyCompletion(days, progress.NewSchedule(nil), 2025, time.June)

	want := progress.MonthlyCompletion{
		DistinctDaysTrained:   10,
		TotalPossibleDays:     30,
		CompletionRatePercent: 33,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeMonthlyCompletion() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeMonthlyCompletionScheduled(t *testing.T) {
	// June 2025 has five Mondays, four Wednesdays, and four Fridays.
	schedule := progress.NewSchedule([]int{1, 3, 5})
	days := []progress.DayKey{
		dayOf(t, "2025-06-02"),
		dayOf(t, "2025-06-04"),
		dayOf(t, "2025-06-06"),
		// Same day twice counts once.
		dayOf(t, "2025-06-06"),
		// Outside the month, ignored.
		dayOf(t, "2025-05-30"),
	}

	got := progress.ComputeMonthlyCompletion(days, schedule, 2025, time.June)

	want := progress.MonthlyCompletion{
		DistinctDaysTrained:   3,
		TotalPossibleDays:     13,
		CompletionRatePercent: 23,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeMonthlyCompletion() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeMonthlyCompletionRounding(t *testing.T) {
	schedule := progress.NewSchedule([]int{1}) // Mondays only: 5 in June 2025.
	tests := []struct {
		name    string
		trained int
		want    int
	}{
		{"none", 0, 0},
		{"one of five", 1, 20},
		{"two of five", 2, 40},
		{"three of five", 3, 60},
		{"all", 5, 100},
	}
	mondays := []progress.DayKey{
		dayOf(t, "2025-06-02"),
		dayOf(t, "2025-06-09"),
		dayOf(t, "2025-06-16"),
		dayOf(t, "2025-06-23"),
		dayOf(t, "2025-06-30"),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progress.ComputeMonthlyCompletion(mondays[:tt.trained], schedule, 2025, time.June)
			if got.CompletionRatePercent != tt.want {
				t.Errorf("CompletionRatePercent = %d, want %d", got.CompletionRatePercent, tt.want)
			}
		})
	}
}

func TestComputeMonthlyCompletionRoundsHalfUp(t *testing.T) {
	// Tuesdays and Thursdays in June 2025 give eight possible days;
	// one trained day is 12.5%, which rounds up to 13.
	schedule := progress.NewSchedule([]int{2, 4})
	days := []progress.DayKey{dayOf(t, "2025-06-03")}

	got := progress.ComputeMonthlyCompletion(days, schedule, 2025, time.June)

	if got.TotalPossibleDays != 8 {
		t.Errorf("TotalPossibleDays = %d, want 8", got.TotalPossibleDays)
	}
	if got.CompletionRatePercent != 13 {
		t.Errorf("CompletionRatePercent = %d, want 13", got.CompletionRatePercent)
	}
}

func TestComputeMonthlyCompletionClampsOverachievers(t *testing.T) {
	// Training on rest days must not push the rate above 100%.
	schedule := progress.NewSchedule([]int{1})
	var days []progress.DayKey
	first := dayOf(t, "2025-06-01")
	for i := range 30 {
		days = append(days, first+progress.DayKey(i))
	}

	got := progress.ComputeMonthlyCompletion(days, schedule, 2025, time.June)

	if got.CompletionRatePercent != 100 {
		t.Errorf("CompletionRatePercent = %d, want 100", got.CompletionRatePercent)
	}
	if got.DistinctDaysTrained != 30 {
		t.Errorf("DistinctDaysTrained = %d, want 30", got.DistinctDaysTrained)
	}
}

func TestComputeMonthlyCompletionEmptyMonth(t *testing.T) {
	got := progress.ComputeMonthlyCompletion(nil, progress.NewSchedule(nil), 2025, time.February)

	if got.DistinctDaysTrained != 0 || got.CompletionRatePercent != 0 {
		t.Errorf("empty month: got %+v, want zero trained and zero rate", got)
	}
	if got.TotalPossibleDays != 28 {
		t.Errorf("TotalPossibleDays = %d, want 28", got.TotalPossibleDays)
	}
}
