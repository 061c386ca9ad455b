// Package workout manages plans, workouts, the exercise catalogue, and gym
// sessions with their set logs.
package workout

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/progress"
	"github.com/vlourenco/treinoapp/internal/sqlite"
	"github.com/vlourenco/treinoapp/internal/users"
)

var (
	ErrNotFound         = errors.NewSentinel("not found")
	ErrForbidden        = errors.NewSentinel("operation not allowed for this user")
	ErrNotTrainer       = errors.NewSentinel("user is not a trainer")
	ErrStudentNotLinked = errors.NewSentinel("student is not linked to trainer")
	ErrStudentInvalid   = errors.NewSentinel("target user cannot receive plans")
	ErrSessionFinished  = errors.NewSentinel("session is already finished")
	ErrInvalidInput     = errors.NewSentinel("invalid input")
)

// UserDirectory is the slice of the users service the workout service needs
// for plan-sharing validations.
type UserDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (users.User, error)
	GetByEmail(ctx context.Context, email string) (users.User, error)
	HasRelation(ctx context.Context, trainerID uuid.UUID, studentEmail string) (bool, error)
}

// Service handles the business logic for workout management.
type Service struct {
	repo         *repository
	logger       *slog.Logger
	directory    UserDirectory
	markdown     goldmark.Markdown
	openaiAPIKey string
}

// NewService creates a new workout service.
func NewService(db *sqlite.Database, logger *slog.Logger, directory UserDirectory, openaiAPIKey string) *Service {
	return &Service{
		repo:         newRepository(db, logger),
		logger:       logger,
		directory:    directory,
		markdown:     goldmark.New(),
		openaiAPIKey: openaiAPIKey,
	}
}

// CreatePlan creates a plan for the author. When the author already has a
// plan with the same name, a numeric suffix is appended: "Treino", then
// "Treino (2)", "Treino (3)", and so on.
func (s *Service) CreatePlan(ctx context.Context, authorID uuid.UUID, name string) (Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Plan{}, errors.Wrap(ErrInvalidInput, "plan name is required")
	}
	if _, err := s.directory.Get(ctx, authorID); err != nil {
		return Plan{}, errors.Wrap(err, "fetch plan author")
	}

	taken, err := s.repo.planNamesByAuthor(ctx, authorID)
	if err != nil {
		return Plan{}, fmt.Errorf("list plan names: %w", err)
	}
	deduped := name
	for suffix := 2; taken[deduped]; suffix++ {
		deduped = fmt.Sprintf("%s (%d)", name, suffix)
	}

	now := time.Now().UTC()
	plan := Plan{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Name:      deduped,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.repo.insertPlan(ctx, plan); err != nil {
		return Plan{}, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "plan created",
		slog.String("plan_id", plan.ID.String()), slog.String("name", plan.Name))
	return plan, nil
}

// DeletePlan removes a plan. Only the author may delete it.
func (s *Service) DeletePlan(ctx context.Context, userID, planID uuid.UUID) error {
	plan, err := s.repo.planByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.AuthorID != userID {
		return ErrForbidden
	}
	return s.repo.deletePlan(ctx, planID)
}

// AccessiblePlans lists the plans the user authored plus the plans shared
// with them, with trainer info on the received ones.
func (s *Service) AccessiblePlans(ctx context.Context, userID uuid.UUID) ([]AccessiblePlan, error) {
	return s.repo.accessiblePlans(ctx, userID)
}

// SendPlan shares a plan with a linked student. The caller must be a trainer,
// own the plan, and have an existing relation with the student; the student
// must be a normal account. Re-sending the same plan refreshes the start
// date, and MakeActive deactivates the student's other assignments.
func (s *Service) SendPlan(ctx context.Context, trainerID uuid.UUID, params SendPlanParams) (PlanAssignment, error) {
	trainer, err := s.directory.Get(ctx, trainerID)
	if err != nil {
		return PlanAssignment{}, errors.Wrap(err, "fetch trainer")
	}
	if trainer.Type != users.TypeTrainer {
		return PlanAssignment{}, ErrNotTrainer
	}

	student, err := s.resolveStudent(ctx, params)
	if err != nil {
		return PlanAssignment{}, err
	}
	if student.Type != users.TypeNormal {
		return PlanAssignment{}, ErrStudentInvalid
	}

	plan, err := s.repo.planByID(ctx, params.PlanID)
	if err != nil {
		return PlanAssignment{}, errors.Wrap(err, "fetch plan")
	}
	if plan.AuthorID != trainerID {
		return PlanAssignment{}, ErrForbidden
	}

	linked, err := s.directory.HasRelation(ctx, trainerID, student.Email)
	if err != nil {
		return PlanAssignment{}, errors.Wrap(err, "check relation")
	}
	if !linked {
		return PlanAssignment{}, ErrStudentNotLinked
	}

	now := time.Now().UTC()
	assignment := PlanAssignment{
		ID:        uuid.New(),
		PlanID:    plan.ID,
		TrainerID: trainerID,
		StudentID: student.ID,
		StartDate: now,
		Active:    params.MakeActive,
		CreatedAt: now,
	}
	if err = s.repo.upsertAssignment(ctx, assignment, params.MakeActive); err != nil {
		return PlanAssignment{}, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "plan sent",
		slog.String("plan_id", plan.ID.String()),
		slog.String("student_id", student.ID.String()))
	return assignment, nil
}

func (s *Service) resolveStudent(ctx context.Context, params SendPlanParams) (users.User, error) {
	if params.StudentID != nil {
		student, err := s.directory.Get(ctx, *params.StudentID)
		if err != nil {
			return users.User{}, errors.Wrap(err, "fetch student")
		}
		return student, nil
	}
	if params.StudentEmail == "" {
		return users.User{}, errors.Wrap(ErrInvalidInput, "student id or email is required")
	}
	student, err := s.directory.GetByEmail(ctx, params.StudentEmail)
	if err != nil {
		return users.User{}, errors.Wrap(err, "fetch student by email")
	}
	return student, nil
}

// CreateWorkout adds a workout to a plan with the given exercise selection.
// Exercise ids already present in the workout are skipped.
func (s *Service) CreateWorkout(
	ctx context.Context, userID, planID uuid.UUID, name string, exerciseIDs []uuid.UUID,
) (Workout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Workout{}, errors.Wrap(ErrInvalidInput, "workout name is required")
	}
	plan, err := s.repo.planByID(ctx, planID)
	if err != nil {
		return Workout{}, err
	}
	if plan.AuthorID != userID {
		return Workout{}, ErrForbidden
	}

	now := time.Now().UTC()
	workout := Workout{
		ID:        uuid.New(),
		PlanID:    planID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.repo.insertWorkout(ctx, workout); err != nil {
		return Workout{}, err
	}
	for _, exerciseID := range exerciseIDs {
		if _, err = s.repo.exerciseByID(ctx, exerciseID); err != nil {
			return Workout{}, errors.Wrap(err, "fetch exercise",
				slog.String("exercise_id", exerciseID.String()))
		}
		if err = s.repo.insertWorkoutExercise(ctx, workout.ID, exerciseID); err != nil {
			return Workout{}, err
		}
	}
	return workout, nil
}

// DeleteWorkout removes a workout. Only the plan author may delete it.
func (s *Service) DeleteWorkout(ctx context.Context, userID, workoutID uuid.UUID) error {
	workout, err := s.repo.workoutByID(ctx, workoutID)
	if err != nil {
		return err
	}
	plan, err := s.repo.planByID(ctx, workout.PlanID)
	if err != nil {
		return err
	}
	if plan.AuthorID != userID {
		return ErrForbidden
	}
	return s.repo.deleteWorkout(ctx, workoutID)
}

// WorkoutsByPlan lists the workouts of a plan with the primary muscle groups
// they target. A plan without workouts yields ErrNotFound.
func (s *Service) WorkoutsByPlan(ctx context.Context, planID uuid.UUID) ([]WorkoutSummary, error) {
	workouts, err := s.repo.workoutsByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, errors.Wrap(ErrNotFound, "plan has no workouts",
			slog.String("plan_id", planID.String()))
	}
	return workouts, nil
}

// ExercisesByWorkout lists the exercises of a workout with their
// prescriptions. A workout without exercises yields ErrNotFound.
func (s *Service) ExercisesByWorkout(ctx context.Context, workoutID uuid.UUID) ([]WorkoutExercise, error) {
	exercises, err := s.repo.workoutExercises(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, errors.Wrap(ErrNotFound, "workout has no exercises",
			slog.String("workout_id", workoutID.String()))
	}
	return exercises, nil
}

// Exercises lists the whole catalogue with muscle groups.
func (s *Service) Exercises(ctx context.Context) ([]Exercise, error) {
	return s.repo.listExercises(ctx)
}

// MuscleGroups lists all known muscle groups.
func (s *Service) MuscleGroups(ctx context.Context) ([]string, error) {
	return s.repo.listMuscleGroups(ctx)
}

// ExerciseInfo returns the prescription for a workout exercise with the
// catalogue description rendered from markdown to HTML.
func (s *Service) ExerciseInfo(ctx context.Context, workoutExerciseID uuid.UUID) (ExerciseInfo, error) {
	exercise, err := s.repo.workoutExerciseByID(ctx, workoutExerciseID)
	if err != nil {
		return ExerciseInfo{}, err
	}
	info := ExerciseInfo{
		Exercise: exercise.Exercise,
		Sets:     exercise.Sets,
		Reps:     exercise.Reps,
		WeightKg: exercise.WeightKg,
		Notes:    exercise.Notes,
	}
	if exercise.Exercise.Description != nil {
		var buf bytes.Buffer
		if err = s.markdown.Convert([]byte(*exercise.Exercise.Description), &buf); err != nil {
			return ExerciseInfo{}, fmt.Errorf("render exercise description: %w", err)
		}
		info.DescriptionHTML = buf.String()
	}
	return info, nil
}

// GenerateExercise adds a catalogue entry for the given name. With an OpenAI
// key configured it asks the model for a description and muscle groups;
// otherwise, or when generation fails, a minimal entry is stored that can be
// filled in later.
func (s *Service) GenerateExercise(ctx context.Context, name string) (Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Exercise{}, errors.Wrap(ErrInvalidInput, "exercise name is required")
	}

	exercise := s.generateExerciseContent(ctx, name)
	persisted, err := s.repo.upsertExercise(ctx, exercise)
	if err != nil {
		return Exercise{}, err
	}
	return persisted, nil
}

func (s *Service) generateExerciseContent(ctx context.Context, name string) Exercise {
	if s.openaiAPIKey == "" {
		return minimalExercise(name)
	}

	muscleGroups, err := s.repo.listMuscleGroups(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to get muscle groups", slog.Any("error", err))
		return minimalExercise(name)
	}

	generator := newExerciseGenerator(s.openaiAPIKey, muscleGroups)
	generated, err := generator.Generate(ctx, name)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to generate exercise details",
			slog.Any("error", err), slog.String("name", name))
		return minimalExercise(name)
	}
	return generated
}

func minimalExercise(name string) Exercise {
	description := fmt.Sprintf("# %s\n\nSem descrição disponível ainda.", name)
	return Exercise{
		ID:                    uuid.New(),
		Name:                  name,
		Description:           &description,
		PrimaryMuscleGroups:   []string{},
		SecondaryMuscleGroups: []string{},
	}
}

// StartSession opens a new session, optionally tied to a workout.
func (s *Service) StartSession(ctx context.Context, userID uuid.UUID, workoutID *uuid.UUID) (Session, error) {
	if workoutID != nil {
		if _, err := s.repo.workoutByID(ctx, *workoutID); err != nil {
			return Session{}, errors.Wrap(err, "fetch workout")
		}
	}
	session := Session{
		ID:        uuid.New(),
		UserID:    userID,
		WorkoutID: workoutID,
		StartedAt: time.Now().UTC(),
	}
	if err := s.repo.insertSession(ctx, session); err != nil {
		return Session{}, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "session started",
		slog.String("session_id", session.ID.String()))
	return session, nil
}

// AddSetLog records a performed set on an open session owned by the user.
// When the set references a workout exercise, its prescription is refreshed
// with the logged load.
func (s *Service) AddSetLog(
	ctx context.Context, userID, sessionID uuid.UUID, params AddSetParams,
) (SetLog, error) {
	session, err := s.repo.sessionByID(ctx, sessionID)
	if err != nil {
		return SetLog{}, err
	}
	if session.UserID != userID {
		return SetLog{}, ErrForbidden
	}
	if session.FinishedAt != nil {
		return SetLog{}, ErrSessionFinished
	}

	if params.WorkoutExerciseID != nil {
		if _, err = s.repo.workoutExerciseByID(ctx, *params.WorkoutExerciseID); err != nil {
			return SetLog{}, errors.Wrap(err, "fetch workout exercise")
		}
	}

	log := SetLog{
		ID:                uuid.New(),
		SessionID:         sessionID,
		WorkoutExerciseID: params.WorkoutExerciseID,
		SetNumber:         params.SetNumber,
		WeightKg:          params.WeightKg,
		Reps:              params.Reps,
		DistanceM:         params.DistanceM,
		DurationSeconds:   params.DurationSeconds,
		Notes:             params.Notes,
		CreatedAt:         time.Now().UTC(),
	}
	if err = s.repo.insertSetLog(ctx, log); err != nil {
		return SetLog{}, err
	}

	if params.WorkoutExerciseID != nil {
		if err = s.repo.updatePrescription(ctx, *params.WorkoutExerciseID,
			nil, params.Reps, params.WeightKg, params.Notes); err != nil {
			return SetLog{}, err
		}
	}
	return log, nil
}

// FinishSession closes a session. Finishing an already finished session is
// not an error; the returned flag reports that case so the caller can answer
// accordingly.
func (s *Service) FinishSession(ctx context.Context, userID, sessionID uuid.UUID) (Session, bool, error) {
	session, err := s.repo.sessionByID(ctx, sessionID)
	if err != nil {
		return Session{}, false, err
	}
	if session.UserID != userID {
		return Session{}, false, ErrForbidden
	}

	alreadyFinished, err := s.repo.markFinished(ctx, sessionID, time.Now().UTC())
	if err != nil {
		return Session{}, false, err
	}
	if session, err = s.repo.sessionByID(ctx, sessionID); err != nil {
		return Session{}, false, err
	}
	return session, alreadyFinished, nil
}

// LatestSession returns the most recently finished session of a workout.
func (s *Service) LatestSession(ctx context.Context, userID, workoutID uuid.UUID) (Session, error) {
	return s.repo.latestFinishedSession(ctx, userID, workoutID)
}

// SessionsByUser lists all sessions of a user, newest finished first with
// open sessions at the end.
func (s *Service) SessionsByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	return s.repo.sessionsByUser(ctx, userID)
}

// SetLogsByUser lists every set the user has logged, newest first.
func (s *Service) SetLogsByUser(ctx context.Context, userID uuid.UUID) ([]SetLog, error) {
	return s.repo.setLogsByUser(ctx, userID)
}

// SessionsByPlan lists the user's sessions tied to workouts of a plan.
func (s *Service) SessionsByPlan(ctx context.Context, userID, planID uuid.UUID) ([]Session, error) {
	return s.repo.sessionsByPlan(ctx, userID, planID)
}

// SessionStamps implements the progress session source.
func (s *Service) SessionStamps(ctx context.Context, userID uuid.UUID) ([]progress.SessionStamp, error) {
	return s.repo.sessionStamps(ctx, userID)
}
