package workout

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a named collection of workouts owned by its author. Trainers share
// plans with students through assignments.
type Plan struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"authorId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanOrigin tells how a plan became visible to a user.
type PlanOrigin string

const (
	OriginCreated  PlanOrigin = "created"
	OriginReceived PlanOrigin = "received"
)

// TrainerInfo identifies the trainer who shared a plan.
type TrainerInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AccessiblePlan is a plan the user can see: either authored by them or
// received through an assignment. Trainer, StartDate and Active are only set
// for received plans.
type AccessiblePlan struct {
	Plan
	Origin    PlanOrigin   `json:"origin"`
	Trainer   *TrainerInfo `json:"trainer,omitempty"`
	StartDate *time.Time   `json:"startDate,omitempty"`
	Active    *bool        `json:"active,omitempty"`
}

// PlanAssignment links a shared plan to a student. At most one assignment
// exists per plan and student; re-sending updates the start date.
type PlanAssignment struct {
	ID        uuid.UUID `json:"id"`
	PlanID    uuid.UUID `json:"planId"`
	TrainerID uuid.UUID `json:"trainerId"`
	StudentID uuid.UUID `json:"studentId"`
	StartDate time.Time `json:"startDate"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendPlanParams identifies the student either by id or by email.
type SendPlanParams struct {
	PlanID       uuid.UUID  `json:"planId"`
	StudentID    *uuid.UUID `json:"studentId"`
	StudentEmail string     `json:"studentEmail"`
	MakeActive   bool       `json:"makeActive"`
}

// Workout is a named exercise selection inside a plan, e.g. "Treino A".
type Workout struct {
	ID        uuid.UUID `json:"id"`
	PlanID    uuid.UUID `json:"planId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutSummary is a workout together with the primary muscle groups its
// exercises target.
type WorkoutSummary struct {
	Workout
	MuscleGroups []string `json:"muscleGroups"`
}

// Exercise is a catalogue entry, e.g. "Supino reto com barra".
type Exercise struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Description           *string   `json:"description"`
	IsUnilateral          bool      `json:"isUnilateral"`
	PrimaryMuscleGroups   []string  `json:"primaryMuscleGroups"`
	SecondaryMuscleGroups []string  `json:"secondaryMuscleGroups"`
}

// WorkoutExercise ties a catalogue exercise to a workout with its
// prescription (target sets, reps, load, and trainer notes).
type WorkoutExercise struct {
	ID        uuid.UUID `json:"id"`
	WorkoutID uuid.UUID `json:"workoutId"`
	Exercise  Exercise  `json:"exercise"`
	Sets      *int      `json:"sets"`
	Reps      *int      `json:"reps"`
	WeightKg  *float64  `json:"weightKg"`
	Notes     *string   `json:"notes"`
}

// ExerciseInfo is the prescription view served on the exercise info endpoint.
// DescriptionHTML carries the markdown description rendered to HTML.
type ExerciseInfo struct {
	Exercise        Exercise `json:"exercise"`
	Sets            *int     `json:"sets"`
	Reps            *int     `json:"reps"`
	WeightKg        *float64 `json:"weightKg"`
	Notes           *string  `json:"notes"`
	DescriptionHTML string   `json:"descriptionHtml"`
}

// Session is one gym visit. FinishedAt stays nil while the session is open;
// only finished sessions count towards streaks and monthly completion.
type Session struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	WorkoutID  *uuid.UUID `json:"workoutId"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
	SetLogs    []SetLog   `json:"setLogs"`
}

// SetLog records one performed set within a session.
type SetLog struct {
	ID                uuid.UUID  `json:"id"`
	SessionID         uuid.UUID  `json:"sessionId"`
	WorkoutExerciseID *uuid.UUID `json:"workoutExerciseId"`
	SetNumber         *int       `json:"setNumber"`
	WeightKg          *float64   `json:"weightKg"`
	Reps              *int       `json:"reps"`
	DistanceM         *float64   `json:"distanceM"`
	DurationSeconds   *int       `json:"durationSeconds"`
	Notes             *string    `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// AddSetParams carries the fields accepted when logging a set.
type AddSetParams struct {
	WorkoutExerciseID *uuid.UUID `json:"workoutExerciseId"`
	SetNumber         *int       `json:"setNumber"`
	WeightKg          *float64   `json:"weightKg"`
	Reps              *int       `json:"reps"`
	DistanceM         *float64   `json:"distanceM"`
	DurationSeconds   *int       `json:"durationSeconds"`
	Notes             *string    `json:"notes"`
}
