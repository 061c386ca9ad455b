package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/progress"
	"github.com/vlourenco/treinoapp/internal/sqlite"
)

type repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{db: db, logger: logger}
}

// storedUser is a users row including the password hash. Only Authenticate
// needs the hash, so the public User type omits it.
type storedUser struct {
	User
	passwordHash string
}

const userColumns = `id, email, password_hash, user_type, name, gender, birth_date, goal,
       height_cm, weight_kg, medical_notes, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (storedUser, error) {
	var (
		u         storedUser
		id        string
		birthDate sql.NullTime
	)
	err := row.Scan(&id, &u.Email, &u.passwordHash, &u.Type, &u.Name, &u.Gender, &birthDate,
		&u.Goal, &u.HeightCm, &u.WeightKg, &u.MedicalNotes, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return storedUser{}, err
	}
	if u.ID, err = uuid.Parse(id); err != nil {
		return storedUser{}, fmt.Errorf("parse user id: %w", err)
	}
	if birthDate.Valid {
		u.BirthDate = &birthDate.Time
	}
	return u, nil
}

func (r *repository) insertUser(ctx context.Context, u User, passwordHash string) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, user_type, name, gender, birth_date, goal,
		                   height_cm, weight_kg, medical_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Email, passwordHash, u.Type, u.Name, u.Gender, u.BirthDate, u.Goal,
		u.HeightCm, u.WeightKg, u.MedicalNotes, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *repository) userByID(ctx context.Context, id uuid.UUID) (storedUser, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = ?", userColumns), id.String())
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storedUser{}, ErrNotFound
	}
	if err != nil {
		return storedUser{}, fmt.Errorf("query user by id: %w", err)
	}
	return u, nil
}

func (r *repository) userByEmail(ctx context.Context, email string) (storedUser, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE email = ?", userColumns), email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storedUser{}, ErrNotFound
	}
	if err != nil {
		return storedUser{}, fmt.Errorf("query user by email: %w", err)
	}
	return u, nil
}

func (r *repository) updateUser(ctx context.Context, u User, passwordHash string) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, name = ?, gender = ?, birth_date = ?, goal = ?,
		    height_cm = ?, weight_kg = ?, medical_notes = ?, updated_at = ?
		WHERE id = ?`,
		passwordHash, u.Name, u.Gender, u.BirthDate, u.Goal,
		u.HeightCm, u.WeightKg, u.MedicalNotes, u.UpdatedAt, u.ID.String())
	if err != nil {
		return fmt.Errorf("update user: %w", err)
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

func (r *repository) insertRelation(ctx context.Context, relation TrainerRelation) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO trainer_relations (trainer_id, student_email, nickname, created_at)
		VALUES (?, ?, ?, ?)`,
		relation.TrainerID.String(), relation.StudentEmail, relation.Nickname, relation.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrRelationExists
		}
		return fmt.Errorf("insert relation: %w", err)
	}
	return nil
}

func (r *repository) deleteRelation(ctx context.Context, trainerID uuid.UUID, studentEmail string) error {
	result, err := r.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM trainer_relations WHERE trainer_id = ? AND student_email = ?",
		trainerID.String(), studentEmail)
	if err != nil {
		return fmt.Errorf("delete relation: %w", err)
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

func (r *repository) relationsByTrainer(ctx context.Context, trainerID uuid.UUID) ([]TrainerRelation, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT trainer_id, student_email, nickname, created_at
		FROM trainer_relations
		WHERE trainer_id = ?
		ORDER BY created_at`, trainerID.String())
	if err != nil {
		return nil, fmt.Errorf("query relations: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var relations []TrainerRelation
	for rows.Next() {
		var (
			relation TrainerRelation
			id       string
		)
		if err = rows.Scan(&id, &relation.StudentEmail, &relation.Nickname, &relation.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		if relation.TrainerID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse trainer id: %w", err)
		}
		relations = append(relations, relation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return relations, nil
}

func (r *repository) relationExists(ctx context.Context, trainerID uuid.UUID, studentEmail string) (bool, error) {
	var exists bool
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM trainer_relations WHERE trainer_id = ? AND student_email = ?)`,
		trainerID.String(), studentEmail).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query relation existence: %w", err)
	}
	return exists, nil
}

func (r *repository) insertWeightEntry(ctx context.Context, userID uuid.UUID, entry progress.WeightEntry) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO weight_history (id, user_id, weight_kg, recorded_at)
		VALUES (?, ?, ?, ?)`,
		entry.ID.String(), userID.String(), entry.WeightKg, entry.RecordedAt)
	if err != nil {
		return fmt.Errorf("insert weight entry: %w", err)
	}
	return nil
}

func (r *repository) weightHistory(ctx context.Context, userID uuid.UUID, limit int) ([]progress.WeightEntry, error) {
	query := `
		SELECT id, weight_kg, recorded_at
		FROM weight_history
		WHERE user_id = ?
		ORDER BY recorded_at DESC`
	args := []any{userID.String()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query weight history: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var entries []progress.WeightEntry
	for rows.Next() {
		var (
			entry progress.WeightEntry
			id    string
		)
		if err = rows.Scan(&id, &entry.WeightKg, &entry.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		if entry.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse weight entry id: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

func (r *repository) weightEntryByID(ctx context.Context, id uuid.UUID) (progress.WeightEntry, uuid.UUID, error) {
	var (
		entry   progress.WeightEntry
		entryID string
		userID  string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, weight_kg, recorded_at FROM weight_history WHERE id = ?`,
		id.String()).Scan(&entryID, &userID, &entry.WeightKg, &entry.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.WeightEntry{}, uuid.Nil, ErrNotFound
	}
	if err != nil {
		return progress.WeightEntry{}, uuid.Nil, fmt.Errorf("query weight entry: %w", err)
	}
	if entry.ID, err = uuid.Parse(entryID); err != nil {
		return progress.WeightEntry{}, uuid.Nil, fmt.Errorf("parse weight entry id: %w", err)
	}
	owner, err := uuid.Parse(userID)
	if err != nil {
		return progress.WeightEntry{}, uuid.Nil, fmt.Errorf("parse weight entry owner: %w", err)
	}
	return entry, owner, nil
}

func (r *repository) updateWeightEntry(ctx context.Context, entry progress.WeightEntry) error {
	result, err := r.db.ReadWrite.ExecContext(ctx,
		"UPDATE weight_history SET weight_kg = ?, recorded_at = ? WHERE id = ?",
		entry.WeightKg, entry.RecordedAt, entry.ID.String())
	if err != nil {
		return fmt.Errorf("update weight entry: %w", err)
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

func (r *repository) deleteWeightEntry(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM weight_history WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
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

// replaceWorkoutDays swaps the full weekday set in one transaction.
func (r *repository) replaceWorkoutDays(ctx context.Context, userID uuid.UUID, weekdays []int) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback workout days",
				slog.Any("error", rollbackErr))
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM workout_days WHERE user_id = ?", userID.String()); err != nil {
		return fmt.Errorf("clear workout days: %w", err)
	}
	for _, weekday := range weekdays {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO workout_days (user_id, weekday) VALUES (?, ?)",
			userID.String(), weekday); err != nil {
			return fmt.Errorf("insert workout day %d: %w", weekday, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *repository) workoutDays(ctx context.Context, userID uuid.UUID) ([]int, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx,
		"SELECT weekday FROM workout_days WHERE user_id = ? ORDER BY weekday", userID.String())
	if err != nil {
		return nil, fmt.Errorf("query workout days: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var weekdays []int
	for rows.Next() {
		var weekday int
		if err = rows.Scan(&weekday); err != nil {
			return nil, fmt.Errorf("scan workout day: %w", err)
		}
		weekdays = append(weekdays, weekday)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return weekdays, nil
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
