package recovery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlinna/recoverly/internal/contexthelpers"
	"github.com/mlinna/recoverly/internal/sqlite"
)

// sqliteMuscleRepository persists the latest per-muscle recovery estimates.
type sqliteMuscleRepository struct {
	baseRepository
}

func newSQLiteMuscleRepository(db *sqlite.Database, logger *slog.Logger) *sqliteMuscleRepository {
	return &sqliteMuscleRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// ReplaceAll upserts the full set of muscle estimates in one transaction so
// that a concurrent reader never observes a half-written refresh.
func (r *sqliteMuscleRepository) ReplaceAll(ctx context.Context, muscles []MuscleRecovery) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		err = tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
		}
	}(tx)

	for _, m := range muscles {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO muscle_recovery (
				user_id, muscle_group, last_workout_at, workout_intensity, workout_volume,
				workout_minutes, status, recovery_percentage, estimated_full_recovery,
				fatigue_level, soreness_level, readiness_score, last_updated
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id, muscle_group) DO UPDATE SET
				last_workout_at = excluded.last_workout_at,
				workout_intensity = excluded.workout_intensity,
				workout_volume = excluded.workout_volume,
				workout_minutes = excluded.workout_minutes,
				status = excluded.status,
				recovery_percentage = excluded.recovery_percentage,
				estimated_full_recovery = excluded.estimated_full_recovery,
				fatigue_level = excluded.fatigue_level,
				soreness_level = excluded.soreness_level,
				readiness_score = excluded.readiness_score,
				last_updated = excluded.last_updated`,
			userID,
			string(m.MuscleGroup),
			formatNullableTimestamp(m.LastWorkoutAt),
			nullableIntensity(m.WorkoutIntensity),
			m.WorkoutVolume,
			m.WorkoutMinutes,
			string(m.Status),
			m.RecoveryPercentage,
			formatNullableTimestamp(m.EstimatedFullRecovery),
			m.FatigueLevel,
			m.SorenessLevel,
			m.ReadinessScore,
			m.LastUpdated.UTC().Format(timestampFormat),
		); err != nil {
			return fmt.Errorf("upsert muscle recovery %s: %w", m.MuscleGroup, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// List returns the stored estimates in canonical muscle order. An empty
// result means no refresh has run for this user yet.
func (r *sqliteMuscleRepository) List(ctx context.Context) ([]MuscleRecovery, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT muscle_group, last_workout_at, workout_intensity, workout_volume,
		       workout_minutes, status, recovery_percentage, estimated_full_recovery,
		       fatigue_level, soreness_level, readiness_score, last_updated
		FROM muscle_recovery
		WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query muscle recovery: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "close rows", slog.Any("error", closeErr))
		}
	}()

	byGroup := make(map[MuscleGroup]MuscleRecovery)
	for rows.Next() {
		var (
			m               MuscleRecovery
			group           string
			lastWorkoutStr  sql.NullString
			intensityStr    sql.NullString
			fullRecoveryStr sql.NullString
			lastUpdatedStr  string
		)
		if err = rows.Scan(
			&group, &lastWorkoutStr, &intensityStr, &m.WorkoutVolume,
			&m.WorkoutMinutes, &m.Status, &m.RecoveryPercentage, &fullRecoveryStr,
			&m.FatigueLevel, &m.SorenessLevel, &m.ReadinessScore, &lastUpdatedStr,
		); err != nil {
			return nil, fmt.Errorf("scan muscle recovery: %w", err)
		}
		m.MuscleGroup = MuscleGroup(group)
		if m.LastWorkoutAt, err = parseNullableTimestamp(lastWorkoutStr); err != nil {
			return nil, fmt.Errorf("parse last_workout_at: %w", err)
		}
		if intensityStr.Valid {
			m.WorkoutIntensity = Intensity(intensityStr.String)
		}
		if m.EstimatedFullRecovery, err = parseNullableTimestamp(fullRecoveryStr); err != nil {
			return nil, fmt.Errorf("parse estimated_full_recovery: %w", err)
		}
		if m.LastUpdated, err = time.Parse(timestampFormat, lastUpdatedStr); err != nil {
			return nil, fmt.Errorf("parse last_updated: %w", err)
		}
		byGroup[m.MuscleGroup] = m
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate muscle recovery rows: %w", err)
	}

	if len(byGroup) == 0 {
		return nil, nil
	}

	// Return in canonical order regardless of row order.
	muscles := make([]MuscleRecovery, 0, len(byGroup))
	for _, group := range muscleGroups {
		if m, ok := byGroup[group]; ok {
			muscles = append(muscles, m)
		}
	}
	return muscles, nil
}

func formatNullableTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timestampFormat)
}

func parseNullableTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil //nolint:nilnil // nil time is expected for a NULL column.
	}
	parsed, err := time.Parse(timestampFormat, s.String)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp: %w", err)
	}
	return &parsed, nil
}

func nullableIntensity(i Intensity) any {
	if i == "" {
		return nil
	}
	return string(i)
}
