package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vlourenco/treinoapp/internal/errors"
)

// SessionStamp is the completion timestamp of one workout session as reported
// by the session store. FinishedAt is nil for sessions that were started but
// never finished; those earn no streak credit.
type SessionStamp struct {
	ID         uuid.UUID
	FinishedAt *time.Time
}

// SessionSource provides the workout sessions of a user.
type SessionSource interface {
	SessionStamps(ctx context.Context, userID uuid.UUID) ([]SessionStamp, error)
}

// ScheduleSource provides the configured workout weekdays of a user.
type ScheduleSource interface {
	WorkoutDays(ctx context.Context, userID uuid.UUID) ([]int, error)
}

// WeightEntry is one logged body-weight measurement.
type WeightEntry struct {
	ID         uuid.UUID `json:"id"`
	WeightKg   float64   `json:"weightKg"`
	RecordedAt time.Time `json:"recordedAt"`
}

// ProfileSource provides the profile data the progress report includes.
type ProfileSource interface {
	Goal(ctx context.Context, userID uuid.UUID) (string, error)
	WeightHistory(ctx context.Context, userID uuid.UUID, limit int) ([]WeightEntry, error)
}

// MainPageSummary is the condensed view the main page renders.
type MainPageSummary struct {
	CurrentStreak         int `json:"currentStreak"`
	MonthSessions         int `json:"monthSessions"`
	TotalPossibleSessions int `json:"totalPossibleSessions"`
	CompletionRate        int `json:"completionRate"`
}

// Report combines weight history with the training stats for the progress page.
type Report struct {
	Goal          string        `json:"goal"`
	WeightHistory []WeightEntry `json:"weightHistory"`
	MonthSessions int           `json:"monthSessions"`
	CurrentStreak int           `json:"currentStreak"`
}

// Service answers streak and completion queries. All computation happens at
// query time from the stored sessions; nothing is cached or persisted.
type Service struct {
	sessions        SessionSource
	schedules       ScheduleSource
	profiles        ProfileSource
	logger          *slog.Logger
	defaultTimezone string
	now             func() time.Time
}

// An Option configures the service.
type Option func(*Service)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService wires the progress service to its data sources. defaultTimezone
// is used when a query does not specify one and must be a valid IANA name.
func NewService(
	sessions SessionSource,
	schedules ScheduleSource,
	profiles ProfileSource,
	logger *slog.Logger,
	defaultTimezone string,
	opts ...Option,
) (*Service, error) {
	if _, err := loadLocation(defaultTimezone); err != nil {
		return nil, errors.Wrap(err, "validate default timezone")
	}
	s := &Service{
		sessions:        sessions,
		schedules:       schedules,
		profiles:        profiles,
		logger:          logger,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Streak computes the user's workout streak in the given timezone. An empty
// timezone falls back to the configured default; an unknown one fails with
// ErrInvalidTimezone.
func (s *Service) Streak(ctx context.Context, userID uuid.UUID, timezone string) (StreakResult, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return StreakResult{}, err
	}

	days, err := s.completionDays(ctx, userID, loc)
	if err != nil {
		return StreakResult{}, errors.Wrap(err, "fetch completion days")
	}
	schedule := s.schedule(ctx, userID)

	return ComputeStreak(days, schedule, StartOfDay(s.now(), loc)), nil
}

// MonthlyCompletion computes the completion stats for the current month in
// the given timezone.
func (s *Service) MonthlyCompletion(ctx context.Context, userID uuid.UUID, timezone string) (MonthlyCompletion, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return MonthlyCompletion{}, err
	}

	days, err := s.completionDays(ctx, userID, loc)
	if err != nil {
		return MonthlyCompletion{}, errors.Wrap(err, "fetch completion days")
	}
	schedule := s.schedule(ctx, userID)

	year, month, _ := StartOfDay(s.now(), loc).Date()
	return ComputeMonthlyCompletion(days, schedule, year, month), nil
}

// MainPageSummary combines the current streak with this month's completion
// stats using a single fetch of the session history.
func (s *Service) MainPageSummary(ctx context.Context, userID uuid.UUID, timezone string) (MainPageSummary, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return MainPageSummary{}, err
	}

	days, err := s.completionDays(ctx, userID, loc)
	if err != nil {
		return MainPageSummary{}, errors.Wrap(err, "fetch completion days")
	}
	schedule := s.schedule(ctx, userID)

	today := StartOfDay(s.now(), loc)
	streak := ComputeStreak(days, schedule, today)
	year, month, _ := today.Date()
	monthly := ComputeMonthlyCompletion(days, schedule, year, month)

	return MainPageSummary{
		CurrentStreak:         streak.CurrentStreak,
		MonthSessions:         monthly.DistinctDaysTrained,
		TotalPossibleSessions: monthly.TotalPossibleDays,
		CompletionRate:        monthly.CompletionRatePercent,
	}, nil
}

// Report builds the progress page payload: weight history and goal from the
// profile plus this month's training stats.
func (s *Service) Report(ctx context.Context, userID uuid.UUID, timezone string) (Report, error) {
	summary, err := s.MainPageSummary(ctx, userID, timezone)
	if err != nil {
		return Report{}, err
	}

	goal, err := s.profiles.Goal(ctx, userID)
	if err != nil {
		return Report{}, errors.Wrap(err, "fetch goal")
	}
	weightHistory, err := s.profiles.WeightHistory(ctx, userID, 0)
	if err != nil {
		return Report{}, errors.Wrap(err, "fetch weight history")
	}

	return Report{
		Goal:          goal,
		WeightHistory: weightHistory,
		MonthSessions: summary.MonthSessions,
		CurrentStreak: summary.CurrentStreak,
	}, nil
}

func (s *Service) location(timezone string) (*time.Location, error) {
	if timezone == "" {
		timezone = s.defaultTimezone
	}
	return loadLocation(timezone)
}

// completionDays converts the user's finished sessions to day keys in loc.
// Unfinished sessions are skipped.
func (s *Service) completionDays(ctx context.Context, userID uuid.UUID, loc *time.Location) ([]DayKey, error) {
	stamps, err := s.sessions.SessionStamps(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch session stamps")
	}
	days := make([]DayKey, 0, len(stamps))
	for _, stamp := range stamps {
		if stamp.FinishedAt == nil {
			continue
		}
		days = append(days, StartOfDay(*stamp.FinishedAt, loc))
	}
	return days, nil
}

// schedule fetches the user's workout days, degrading to an unrestricted
// schedule when the fetch fails. An unconfigured schedule is a normal state
// and must never fail the whole computation.
func (s *Service) schedule(ctx context.Context, userID uuid.UUID) Schedule {
	weekdays, err := s.schedules.WorkoutDays(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "workout days unavailable, treating schedule as unrestricted",
			slog.String("user_id", userID.String()), errors.SlogError(err))
		return NewSchedule(nil)
	}
	return NewSchedule(weekdays)
}
