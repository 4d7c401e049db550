package recovery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mlinna/recoverly/internal/contexthelpers"
	"github.com/mlinna/recoverly/internal/sqlite"
)

// sqliteWorkoutRepository persists completed workouts and their exercises.
type sqliteWorkoutRepository struct {
	baseRepository
}

func newSQLiteWorkoutRepository(db *sqlite.Database, logger *slog.Logger) *sqliteWorkoutRepository {
	return &sqliteWorkoutRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Create stores a completed workout together with its exercise list in one
// transaction and returns the workout with its assigned ID.
func (r *sqliteWorkoutRepository) Create(ctx context.Context, w Workout) (Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return Workout{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		err = tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
		}
	}(tx)

	result, err := tx.ExecContext(ctx, `
		INSERT INTO workouts (user_id, workout_type, difficulty, duration_minutes, completed_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, w.Type, w.Difficulty, w.DurationMinutes, w.CompletedAt.UTC().Format(timestampFormat))
	if err != nil {
		return Workout{}, fmt.Errorf("insert workout: %w", err)
	}
	workoutID, err := result.LastInsertId()
	if err != nil {
		return Workout{}, fmt.Errorf("last insert id: %w", err)
	}

	for i, ex := range w.Exercises {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO workout_exercises (workout_id, position, name, sets, rpe, muscle_groups)
			VALUES (?, ?, ?, ?, ?, ?)`,
			workoutID, i+1, ex.Name, ex.Sets, ex.RPE, joinMuscleGroups(ex.MuscleGroups)); err != nil {
			return Workout{}, fmt.Errorf("insert workout exercise: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return Workout{}, fmt.Errorf("commit transaction: %w", err)
	}

	w.ID = workoutID
	return w, nil
}

// List returns the user's workouts completed at or after since, oldest
// first, with their exercise lists attached.
func (r *sqliteWorkoutRepository) List(ctx context.Context, since time.Time) ([]Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, workout_type, difficulty, duration_minutes, completed_at
		FROM workouts
		WHERE user_id = ? AND completed_at >= ?
		ORDER BY completed_at`,
		userID, since.UTC().Format(timestampFormat))
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "close rows", slog.Any("error", closeErr))
		}
	}()

	var workouts []Workout
	for rows.Next() {
		var (
			w              Workout
			completedAtStr string
		)
		if err = rows.Scan(&w.ID, &w.Type, &w.Difficulty, &w.DurationMinutes, &completedAtStr); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		if w.CompletedAt, err = time.Parse(timestampFormat, completedAtStr); err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout rows: %w", err)
	}

	for i := range workouts {
		if workouts[i].Exercises, err = r.fetchExercises(ctx, workouts[i].ID); err != nil {
			return nil, fmt.Errorf("fetch exercises for workout %d: %w", workouts[i].ID, err)
		}
	}

	return workouts, nil
}

func (r *sqliteWorkoutRepository) fetchExercises(ctx context.Context, workoutID int64) ([]Exercise, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT name, sets, rpe, muscle_groups
		FROM workout_exercises
		WHERE workout_id = ?
		ORDER BY position`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query workout exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "close rows", slog.Any("error", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var (
			ex        Exercise
			rpe       sql.NullFloat64
			muscleCSV string
		)
		if err = rows.Scan(&ex.Name, &ex.Sets, &rpe, &muscleCSV); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		if rpe.Valid {
			ex.RPE = &rpe.Float64
		}
		ex.MuscleGroups = parseMuscleGroups(muscleCSV)
		exercises = append(exercises, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise rows: %w", err)
	}
	return exercises, nil
}

// joinMuscleGroups serializes an explicit muscle-group list to the
// comma-separated column format. Empty means "infer from the name".
func joinMuscleGroups(groups []MuscleGroup) string {
	if len(groups) == 0 {
		return ""
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return strings.Join(names, ",")
}

// parseMuscleGroups parses the comma-separated column, dropping names that
// are no longer tracked.
func parseMuscleGroups(s string) []MuscleGroup {
	if s == "" {
		return nil
	}
	var groups []MuscleGroup
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if ValidMuscleGroup(name) {
			groups = append(groups, MuscleGroup(name))
		}
	}
	return groups
}
