package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlinna/recoverly/internal/contexthelpers"
	"github.com/mlinna/recoverly/internal/sqlite"
)

// sqliteWellnessRepository persists sleep sessions and nutrition days.
type sqliteWellnessRepository struct {
	baseRepository
}

func newSQLiteWellnessRepository(db *sqlite.Database, logger *slog.Logger) *sqliteWellnessRepository {
	return &sqliteWellnessRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// AddSleep stores one night of sleep for the authenticated user.
func (r *sqliteWellnessRepository) AddSleep(ctx context.Context, s SleepSession) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO sleep_sessions (user_id, slept_at, duration_minutes, quality_rating)
		VALUES (?, ?, ?, ?)`,
		userID, s.SleptOn.UTC().Format(timestampFormat), s.DurationMinutes, s.QualityRating)
	if err != nil {
		return fmt.Errorf("insert sleep session: %w", err)
	}
	return nil
}

// ListSleep returns sleep sessions logged at or after since, oldest first.
func (r *sqliteWellnessRepository) ListSleep(ctx context.Context, since time.Time) ([]SleepSession, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT slept_at, duration_minutes, quality_rating
		FROM sleep_sessions
		WHERE user_id = ? AND slept_at >= ?
		ORDER BY slept_at`,
		userID, since.UTC().Format(timestampFormat))
	if err != nil {
		return nil, fmt.Errorf("query sleep sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "close rows", slog.Any("error", closeErr))
		}
	}()

	var sessions []SleepSession
	for rows.Next() {
		var (
			s          SleepSession
			sleptAtStr string
		)
		if err = rows.Scan(&sleptAtStr, &s.DurationMinutes, &s.QualityRating); err != nil {
			return nil, fmt.Errorf("scan sleep session: %w", err)
		}
		if s.SleptOn, err = time.Parse(timestampFormat, sleptAtStr); err != nil {
			return nil, fmt.Errorf("parse slept_at: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sleep rows: %w", err)
	}
	return sessions, nil
}

// UpsertNutrition stores one day of nutrition totals. Logging the same day
// twice replaces the earlier totals.
func (r *sqliteWellnessRepository) UpsertNutrition(ctx context.Context, n NutritionDay) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO nutrition_days (user_id, day, total_protein_g, total_calories)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET
			total_protein_g = excluded.total_protein_g,
			total_calories = excluded.total_calories`,
		userID, n.Day.UTC().Format(dateFormat), n.TotalProteinG, n.TotalCalories)
	if err != nil {
		return fmt.Errorf("upsert nutrition day: %w", err)
	}
	return nil
}

// ListNutrition returns nutrition days at or after since, oldest first.
func (r *sqliteWellnessRepository) ListNutrition(ctx context.Context, since time.Time) ([]NutritionDay, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT day, total_protein_g, total_calories
		FROM nutrition_days
		WHERE user_id = ? AND day >= ?
		ORDER BY day`,
		userID, since.UTC().Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("query nutrition days: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "close rows", slog.Any("error", closeErr))
		}
	}()

	var days []NutritionDay
	for rows.Next() {
		var (
			n      NutritionDay
			dayStr string
		)
		if err = rows.Scan(&dayStr, &n.TotalProteinG, &n.TotalCalories); err != nil {
			return nil, fmt.Errorf("scan nutrition day: %w", err)
		}
		if n.Day, err = time.Parse(dateFormat, dayStr); err != nil {
			return nil, fmt.Errorf("parse day: %w", err)
		}
		days = append(days, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nutrition rows: %w", err)
	}
	return days, nil
}
