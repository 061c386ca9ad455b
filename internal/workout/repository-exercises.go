package workout

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vlourenco/treinoapp/internal/errors"
)

func (r *repository) insertWorkout(ctx context.Context, workout Workout) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workouts (id, plan_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		workout.ID.String(), workout.PlanID.String(), workout.Name,
		workout.CreatedAt, workout.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}

func (r *repository) workoutByID(ctx context.Context, id uuid.UUID) (Workout, error) {
	var (
		workout   Workout
		workoutID string
		planID    string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, plan_id, name, created_at, updated_at FROM workouts WHERE id = ?`,
		id.String()).Scan(&workoutID, &planID, &workout.Name, &workout.CreatedAt, &workout.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, ErrNotFound
	}
	if err != nil {
		return Workout{}, fmt.Errorf("query workout: %w", err)
	}
	if workout.ID, err = uuid.Parse(workoutID); err != nil {
		return Workout{}, fmt.Errorf("parse workout id: %w", err)
	}
	if workout.PlanID, err = uuid.Parse(planID); err != nil {
		return Workout{}, fmt.Errorf("parse workout plan id: %w", err)
	}
	return workout, nil
}

func (r *repository) deleteWorkout(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, "DELETE FROM workouts WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// workoutsByPlan lists the plan's workouts together with the primary muscle
// groups their exercises target.
func (r *repository) workoutsByPlan(ctx context.Context, planID uuid.UUID) (_ []WorkoutSummary, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, plan_id, name, created_at, updated_at
		FROM workouts
		WHERE plan_id = ?
		ORDER BY created_at`, planID.String())
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var summaries []WorkoutSummary
	for rows.Next() {
		var (
			summary    WorkoutSummary
			workoutID  string
			workoutPID string
		)
		if err = rows.Scan(&workoutID, &workoutPID, &summary.Name,
			&summary.CreatedAt, &summary.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		if summary.ID, err = uuid.Parse(workoutID); err != nil {
			return nil, fmt.Errorf("parse workout id: %w", err)
		}
		if summary.PlanID, err = uuid.Parse(workoutPID); err != nil {
			return nil, fmt.Errorf("parse workout plan id: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i, summary := range summaries {
		if summaries[i].MuscleGroups, err = r.workoutMuscleGroups(ctx, summary.ID); err != nil {
			return nil, fmt.Errorf("fetch muscle groups for workout %s: %w", summary.ID, err)
		}
	}
	return summaries, nil
}

func (r *repository) workoutMuscleGroups(ctx context.Context, workoutID uuid.UUID) (_ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT DISTINCT emg.muscle_group_name
		FROM workout_exercises we
		JOIN exercise_muscle_groups emg ON emg.exercise_id = we.exercise_id
		WHERE we.workout_id = ? AND emg.is_primary = 1
		ORDER BY emg.muscle_group_name`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("query workout muscle groups: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var groups []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan muscle group: %w", err)
		}
		groups = append(groups, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return groups, nil
}

// insertWorkoutExercise adds an exercise to a workout. Duplicates within the
// same workout are skipped via the unique constraint.
func (r *repository) insertWorkoutExercise(ctx context.Context, workoutID, exerciseID uuid.UUID) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_exercises (id, workout_id, exercise_id)
		VALUES (?, ?, ?)
		ON CONFLICT (workout_id, exercise_id) DO NOTHING`,
		uuid.New().String(), workoutID.String(), exerciseID.String())
	if err != nil {
		return fmt.Errorf("insert workout exercise: %w", err)
	}
	return nil
}

func (r *repository) workoutExercises(ctx context.Context, workoutID uuid.UUID) (_ []WorkoutExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT we.id, we.workout_id, we.sets, we.reps, we.weight_kg, we.notes,
		       ed.id, ed.name, ed.description, ed.is_unilateral
		FROM workout_exercises we
		JOIN exercise_definitions ed ON we.exercise_id = ed.id
		WHERE we.workout_id = ?
		ORDER BY ed.name`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("query workout exercises: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var exercises []WorkoutExercise
	for rows.Next() {
		exercise, scanErr := scanWorkoutExercise(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range exercises {
		exercises[i].Exercise.PrimaryMuscleGroups, exercises[i].Exercise.SecondaryMuscleGroups, err =
			r.fetchMuscleGroups(ctx, exercises[i].Exercise.ID)
		if err != nil {
			return nil, err
		}
	}
	return exercises, nil
}

func (r *repository) workoutExerciseByID(ctx context.Context, id uuid.UUID) (WorkoutExercise, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT we.id, we.workout_id, we.sets, we.reps, we.weight_kg, we.notes,
		       ed.id, ed.name, ed.description, ed.is_unilateral
		FROM workout_exercises we
		JOIN exercise_definitions ed ON we.exercise_id = ed.id
		WHERE we.id = ?`, id.String())

	exercise, err := scanWorkoutExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return WorkoutExercise{}, ErrNotFound
	}
	if err != nil {
		return WorkoutExercise{}, err
	}
	exercise.Exercise.PrimaryMuscleGroups, exercise.Exercise.SecondaryMuscleGroups, err =
		r.fetchMuscleGroups(ctx, exercise.Exercise.ID)
	if err != nil {
		return WorkoutExercise{}, err
	}
	return exercise, nil
}

func scanWorkoutExercise(row interface{ Scan(...any) error }) (WorkoutExercise, error) {
	var (
		exercise   WorkoutExercise
		id         string
		workoutID  string
		exerciseID string
	)
	err := row.Scan(&id, &workoutID, &exercise.Sets, &exercise.Reps, &exercise.WeightKg,
		&exercise.Notes, &exerciseID, &exercise.Exercise.Name, &exercise.Exercise.Description,
		&exercise.Exercise.IsUnilateral)
	if err != nil {
		return WorkoutExercise{}, err
	}
	if exercise.ID, err = uuid.Parse(id); err != nil {
		return WorkoutExercise{}, fmt.Errorf("parse workout exercise id: %w", err)
	}
	if exercise.WorkoutID, err = uuid.Parse(workoutID); err != nil {
		return WorkoutExercise{}, fmt.Errorf("parse workout id: %w", err)
	}
	if exercise.Exercise.ID, err = uuid.Parse(exerciseID); err != nil {
		return WorkoutExercise{}, fmt.Errorf("parse exercise id: %w", err)
	}
	return exercise, nil
}

// updatePrescription refreshes the target load on a workout exercise from a
// logged set. Nil fields are left untouched.
func (r *repository) updatePrescription(
	ctx context.Context, id uuid.UUID, sets, reps *int, weightKg *float64, notes *string,
) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workout_exercises
		SET sets      = COALESCE(?, sets),
		    reps      = COALESCE(?, reps),
		    weight_kg = COALESCE(?, weight_kg),
		    notes     = COALESCE(?, notes)
		WHERE id = ?`,
		sets, reps, weightKg, notes, id.String())
	if err != nil {
		return fmt.Errorf("update prescription: %w", err)
	}
	return nil
}

func (r *repository) listExercises(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, description, is_unilateral
		FROM exercise_definitions
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var exercises []Exercise
	for rows.Next() {
		var (
			exercise Exercise
			id       string
		)
		if err = rows.Scan(&id, &exercise.Name, &exercise.Description, &exercise.IsUnilateral); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if exercise.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse exercise id: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range exercises {
		exercises[i].PrimaryMuscleGroups, exercises[i].SecondaryMuscleGroups, err =
			r.fetchMuscleGroups(ctx, exercises[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return exercises, nil
}

func (r *repository) exerciseByID(ctx context.Context, id uuid.UUID) (Exercise, error) {
	var (
		exercise   Exercise
		exerciseID string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, description, is_unilateral FROM exercise_definitions WHERE id = ?`,
		id.String()).Scan(&exerciseID, &exercise.Name, &exercise.Description, &exercise.IsUnilateral)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise: %w", err)
	}
	if exercise.ID, err = uuid.Parse(exerciseID); err != nil {
		return Exercise{}, fmt.Errorf("parse exercise id: %w", err)
	}
	exercise.PrimaryMuscleGroups, exercise.SecondaryMuscleGroups, err = r.fetchMuscleGroups(ctx, exercise.ID)
	if err != nil {
		return Exercise{}, err
	}
	return exercise, nil
}

// upsertExercise inserts a catalogue entry keyed by its unique name. An
// existing entry keeps its id; the description and muscle groups are
// refreshed.
func (r *repository) upsertExercise(ctx context.Context, exercise Exercise) (_ Exercise, err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return Exercise{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback exercise upsert",
				slog.Any("error", rollbackErr))
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO exercise_definitions (id, name, description, is_unilateral)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			description = COALESCE(excluded.description, description),
			is_unilateral = excluded.is_unilateral`,
		exercise.ID.String(), exercise.Name, exercise.Description, exercise.IsUnilateral); err != nil {
		return Exercise{}, fmt.Errorf("upsert exercise: %w", err)
	}

	// The id may differ from the generated one when the name already existed.
	var id string
	if err = tx.QueryRowContext(ctx,
		"SELECT id FROM exercise_definitions WHERE name = ?", exercise.Name).Scan(&id); err != nil {
		return Exercise{}, fmt.Errorf("query exercise id: %w", err)
	}
	if exercise.ID, err = uuid.Parse(id); err != nil {
		return Exercise{}, fmt.Errorf("parse exercise id: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		"DELETE FROM exercise_muscle_groups WHERE exercise_id = ?", id); err != nil {
		return Exercise{}, fmt.Errorf("clear exercise muscle groups: %w", err)
	}
	if err = insertMuscleGroups(ctx, tx, id, exercise.PrimaryMuscleGroups, true); err != nil {
		return Exercise{}, err
	}
	if err = insertMuscleGroups(ctx, tx, id, exercise.SecondaryMuscleGroups, false); err != nil {
		return Exercise{}, err
	}

	if err = tx.Commit(); err != nil {
		return Exercise{}, fmt.Errorf("commit transaction: %w", err)
	}
	return exercise, nil
}

func insertMuscleGroups(
	ctx context.Context, tx *sql.Tx, exerciseID string, muscleGroups []string, isPrimary bool,
) error {
	for _, muscleGroup := range muscleGroups {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_muscle_groups (exercise_id, muscle_group_name, is_primary)
			VALUES (?, ?, ?)
			ON CONFLICT (exercise_id, muscle_group_name) DO UPDATE SET is_primary = excluded.is_primary`,
			exerciseID, muscleGroup, isPrimary); err != nil {
			return fmt.Errorf("insert muscle group %s: %w", muscleGroup, err)
		}
	}
	return nil
}

func (r *repository) fetchMuscleGroups(ctx context.Context, exerciseID uuid.UUID) (_, _ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT mg.name, emg.is_primary
		FROM exercise_muscle_groups emg
		JOIN muscle_groups mg ON emg.muscle_group_name = mg.name
		WHERE emg.exercise_id = ?
		ORDER BY mg.name`, exerciseID.String())
	if err != nil {
		return nil, nil, fmt.Errorf("query muscle groups: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var primary, secondary []string
	for rows.Next() {
		var (
			name      string
			isPrimary bool
		)
		if err = rows.Scan(&name, &isPrimary); err != nil {
			return nil, nil, fmt.Errorf("scan muscle group row: %w", err)
		}
		if isPrimary {
			primary = append(primary, name)
		} else {
			secondary = append(secondary, name)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}
	return primary, secondary, nil
}

func (r *repository) listMuscleGroups(ctx context.Context) (_ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, "SELECT name FROM muscle_groups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query muscle groups: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var muscleGroups []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan muscle group: %w", err)
		}
		muscleGroups = append(muscleGroups, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return muscleGroups, nil
}
