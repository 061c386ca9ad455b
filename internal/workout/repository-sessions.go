package workout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/progress"
)

func (r *repository) insertSession(ctx context.Context, session Session) error {
	var workoutID *string
	if session.WorkoutID != nil {
		id := session.WorkoutID.String()
		workoutID = &id
	}
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_sessions (id, user_id, workout_id, started_at, finished_at)
		VALUES (?, ?, ?, ?, NULL)`,
		session.ID.String(), session.UserID.String(), workoutID, session.StartedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *repository) sessionByID(ctx context.Context, id uuid.UUID) (Session, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, workout_id, started_at, finished_at
		FROM workout_sessions
		WHERE id = ?`, id.String())

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	if session.SetLogs, err = r.setLogsBySession(ctx, session.ID); err != nil {
		return Session{}, err
	}
	return session, nil
}

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var (
		session    Session
		id         string
		userID     string
		workoutID  sql.NullString
		finishedAt sql.NullTime
	)
	err := row.Scan(&id, &userID, &workoutID, &session.StartedAt, &finishedAt)
	if err != nil {
		return Session{}, err
	}
	if session.ID, err = uuid.Parse(id); err != nil {
		return Session{}, fmt.Errorf("parse session id: %w", err)
	}
	if session.UserID, err = uuid.Parse(userID); err != nil {
		return Session{}, fmt.Errorf("parse session user id: %w", err)
	}
	if workoutID.Valid {
		parsed, parseErr := uuid.Parse(workoutID.String)
		if parseErr != nil {
			return Session{}, fmt.Errorf("parse session workout id: %w", parseErr)
		}
		session.WorkoutID = &parsed
	}
	if finishedAt.Valid {
		session.FinishedAt = &finishedAt.Time
	}
	return session, nil
}

// markFinished stamps the session. It reports whether the session was already
// finished so that finishing twice stays idempotent.
func (r *repository) markFinished(ctx context.Context, id uuid.UUID, finishedAt time.Time) (bool, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workout_sessions SET finished_at = ?
		WHERE id = ? AND finished_at IS NULL`,
		finishedAt, id.String())
	if err != nil {
		return false, fmt.Errorf("finish session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected == 0, nil
}

func (r *repository) insertSetLog(ctx context.Context, log SetLog) error {
	var workoutExerciseID *string
	if log.WorkoutExerciseID != nil {
		id := log.WorkoutExerciseID.String()
		workoutExerciseID = &id
	}
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO set_logs (id, session_id, workout_exercise_id, set_number, weight_kg,
		                      reps, distance_m, duration_seconds, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID.String(), log.SessionID.String(), workoutExerciseID, log.SetNumber, log.WeightKg,
		log.Reps, log.DistanceM, log.DurationSeconds, log.Notes, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert set log: %w", err)
	}
	return nil
}

func (r *repository) setLogsBySession(ctx context.Context, sessionID uuid.UUID) ([]SetLog, error) {
	return r.querySetLogs(ctx, `
		SELECT id, session_id, workout_exercise_id, set_number, weight_kg,
		       reps, distance_m, duration_seconds, notes, created_at
		FROM set_logs
		WHERE session_id = ?
		ORDER BY created_at`, sessionID.String())
}

// setLogsByUser lists every set the user has logged across all their
// sessions, newest first.
func (r *repository) setLogsByUser(ctx context.Context, userID uuid.UUID) ([]SetLog, error) {
	return r.querySetLogs(ctx, `
		SELECT sl.id, sl.session_id, sl.workout_exercise_id, sl.set_number, sl.weight_kg,
		       sl.reps, sl.distance_m, sl.duration_seconds, sl.notes, sl.created_at
		FROM set_logs sl
		JOIN workout_sessions ws ON ws.id = sl.session_id
		WHERE ws.user_id = ?
		ORDER BY sl.created_at DESC`, userID.String())
}

func (r *repository) querySetLogs(ctx context.Context, query string, args ...any) (_ []SetLog, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query set logs: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var logs []SetLog
	for rows.Next() {
		var (
			log               SetLog
			id                string
			sid               string
			workoutExerciseID sql.NullString
		)
		if err = rows.Scan(&id, &sid, &workoutExerciseID, &log.SetNumber, &log.WeightKg,
			&log.Reps, &log.DistanceM, &log.DurationSeconds, &log.Notes, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan set log: %w", err)
		}
		if log.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse set log id: %w", err)
		}
		if log.SessionID, err = uuid.Parse(sid); err != nil {
			return nil, fmt.Errorf("parse set log session id: %w", err)
		}
		if workoutExerciseID.Valid {
			parsed, parseErr := uuid.Parse(workoutExerciseID.String)
			if parseErr != nil {
				return nil, fmt.Errorf("parse set log workout exercise id: %w", parseErr)
			}
			log.WorkoutExerciseID = &parsed
		}
		logs = append(logs, log)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return logs, nil
}

// latestFinishedSession returns the most recently finished session of a
// workout for the user. Open sessions are skipped on purpose: an abandoned
// session should not show up as the latest result.
func (r *repository) latestFinishedSession(ctx context.Context, userID, workoutID uuid.UUID) (Session, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, workout_id, started_at, finished_at
		FROM workout_sessions
		WHERE user_id = ? AND workout_id = ? AND finished_at IS NOT NULL
		ORDER BY finished_at DESC
		LIMIT 1`, userID.String(), workoutID.String())

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	if session.SetLogs, err = r.setLogsBySession(ctx, session.ID); err != nil {
		return Session{}, err
	}
	return session, nil
}

// sessionsByUser lists all sessions newest finished first. SQLite sorts NULLs
// last on DESC, so open sessions trail the finished ones.
func (r *repository) sessionsByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	return r.querySessions(ctx, `
		SELECT id, user_id, workout_id, started_at, finished_at
		FROM workout_sessions
		WHERE user_id = ?
		ORDER BY finished_at DESC`, userID.String())
}

func (r *repository) sessionsByPlan(ctx context.Context, userID, planID uuid.UUID) ([]Session, error) {
	return r.querySessions(ctx, `
		SELECT ws.id, ws.user_id, ws.workout_id, ws.started_at, ws.finished_at
		FROM workout_sessions ws
		JOIN workouts w ON ws.workout_id = w.id
		WHERE ws.user_id = ? AND w.plan_id = ?
		ORDER BY ws.finished_at DESC`, userID.String(), planID.String())
}

func (r *repository) querySessions(ctx context.Context, query string, args ...any) (_ []Session, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var sessions []Session
	for rows.Next() {
		session, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range sessions {
		if sessions[i].SetLogs, err = r.setLogsBySession(ctx, sessions[i].ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// sessionStamps is the minimal projection the progress engine consumes.
func (r *repository) sessionStamps(ctx context.Context, userID uuid.UUID) (_ []progress.SessionStamp, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, finished_at
		FROM workout_sessions
		WHERE user_id = ?`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query session stamps: %w", err)
	}
	defer r.closeRows(ctx, rows)

	var stamps []progress.SessionStamp
	for rows.Next() {
		var (
			stamp      progress.SessionStamp
			id         string
			finishedAt sql.NullTime
		)
		if err = rows.Scan(&id, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan session stamp: %w", err)
		}
		if stamp.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse session id: %w", err)
		}
		if finishedAt.Valid {
			stamp.FinishedAt = &finishedAt.Time
		}
		stamps = append(stamps, stamp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return stamps, nil
}
