package workout

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/sqlite"
)

// repository handles database operations for plans, workouts, the exercise
// catalogue, and sessions. Methods are spread over the repository-*.go files.
type repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) insertPlan(ctx context.Context, plan Plan) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO plans (id, author_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		plan.ID.String(), plan.AuthorID.String(), plan.Name, plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (r *repository) planByID(ctx context.Context, id uuid.UUID) (Plan, error) {
	var (
		plan     Plan
		planID   string
		authorID string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, author_id, name, created_at, updated_at FROM plans WHERE id = ?`,
		id.String()).Scan(&planID, &authorID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("query plan: %w", err)
	}
	if plan.ID, err = uuid.Parse(planID); err != nil {
		return Plan{}, fmt.Errorf("parse plan id: %w", err)
	}
	if plan.AuthorID, err = uuid.Parse(authorID); err != nil {
		return Plan{}, fmt.Errorf("parse plan author id: %w", err)
	}
	return plan, nil
}

func (r *repository) deletePlan(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
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

// planNamesByAuthor returns the plan names the author already uses, for the
// "Name (2)" deduplication on create.
func (r *repository) planNamesByAuthor(ctx context.Context, authorID uuid.UUID) (map[string]bool, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx,
		"SELECT name FROM plans WHERE author_id = ?", authorID.String())
	if err != nil {
		return nil, fmt.Errorf("query plan names: %w", err)
	}
	defer r.closeRows(ctx, rows)

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan plan name: %w", err)
		}
		names[name] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return names, nil
}

func (r *repository) accessiblePlans(ctx context.Context, userID uuid.UUID) ([]AccessiblePlan, error) {
	created, err := r.createdPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	received, err := r.receivedPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(created, received...), nil
}

func (r *repository) createdPlans(ctx context.Context, userID uuid.UUID) (_ []AccessiblePlan, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, author_id, name, created_at, updated_at
		FROM plans
		WHERE author_id = ?
		ORDER BY created_at`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query created plans: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var plans []AccessiblePlan
	for rows.Next() {
		var (
			plan     Plan
			planID   string
			authorID string
		)
		if err = rows.Scan(&planID, &authorID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		if plan.ID, err = uuid.Parse(planID); err != nil {
			return nil, fmt.Errorf("parse plan id: %w", err)
		}
		if plan.AuthorID, err = uuid.Parse(authorID); err != nil {
			return nil, fmt.Errorf("parse plan author id: %w", err)
		}
		plans = append(plans, AccessiblePlan{Plan: plan, Origin: OriginCreated})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return plans, nil
}

func (r *repository) receivedPlans(ctx context.Context, userID uuid.UUID) (_ []AccessiblePlan, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT p.id, p.author_id, p.name, p.created_at, p.updated_at,
		       pa.start_date, pa.active,
		       u.id, u.name, u.email
		FROM plan_assignments pa
		JOIN plans p ON pa.plan_id = p.id
		JOIN users u ON pa.trainer_id = u.id
		WHERE pa.student_id = ?
		ORDER BY pa.created_at`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query received plans: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var plans []AccessiblePlan
	for rows.Next() {
		var (
			plan      Plan
			planID    string
			authorID  string
			startDate sql.NullTime
			active    bool
			trainer   TrainerInfo
			trainerID string
		)
		if err = rows.Scan(&planID, &authorID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt,
			&startDate, &active, &trainerID, &trainer.Name, &trainer.Email); err != nil {
			return nil, fmt.Errorf("scan received plan: %w", err)
		}
		if plan.ID, err = uuid.Parse(planID); err != nil {
			return nil, fmt.Errorf("parse plan id: %w", err)
		}
		if plan.AuthorID, err = uuid.Parse(authorID); err != nil {
			return nil, fmt.Errorf("parse plan author id: %w", err)
		}
		if trainer.ID, err = uuid.Parse(trainerID); err != nil {
			return nil, fmt.Errorf("parse trainer id: %w", err)
		}
		accessible := AccessiblePlan{
			Plan:    plan,
			Origin:  OriginReceived,
			Trainer: &trainer,
			Active:  &active,
		}
		if startDate.Valid {
			accessible.StartDate = &startDate.Time
		}
		plans = append(plans, accessible)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return plans, nil
}

// upsertAssignment inserts or refreshes the assignment for a plan and
// student, optionally deactivating the student's other active assignments.
func (r *repository) upsertAssignment(ctx context.Context, assignment PlanAssignment, deactivateOthers bool) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback assignment",
				slog.Any("error", rollbackErr))
		}
	}()

	if deactivateOthers {
		if _, err = tx.ExecContext(ctx, `
			UPDATE plan_assignments SET active = 0
			WHERE student_id = ? AND plan_id != ?`,
			assignment.StudentID.String(), assignment.PlanID.String()); err != nil {
			return fmt.Errorf("deactivate assignments: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO plan_assignments (id, plan_id, trainer_id, student_id, start_date, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (plan_id, student_id) DO UPDATE SET
			start_date = excluded.start_date,
			active = excluded.active`,
		assignment.ID.String(), assignment.PlanID.String(), assignment.TrainerID.String(),
		assignment.StudentID.String(), assignment.StartDate, assignment.Active,
		assignment.CreatedAt); err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *repository) closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "could not close rows", slog.Any("error", err))
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
