package recovery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mlinna/recoverly/internal/contexthelpers"
	"github.com/mlinna/recoverly/internal/sqlite"
)

// sqliteProfileRepository persists the user's raw profile info.
type sqliteProfileRepository struct {
	baseRepository
}

func newSQLiteProfileRepository(db *sqlite.Database, logger *slog.Logger) *sqliteProfileRepository {
	return &sqliteProfileRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Get retrieves the profile info for the authenticated user. Returns
// ErrNoProfile when the user has not saved a profile yet.
func (r *sqliteProfileRepository) Get(ctx context.Context) (UserInfo, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		info        UserInfo
		injuries    string
		supplements string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT age, weight_kg, fitness_level, lifestyle, injuries, supplements
		FROM user_profiles
		WHERE user_id = ?`, userID).Scan(
		&info.Age,
		&info.WeightKg,
		&info.FitnessLevel,
		&info.Lifestyle,
		&injuries,
		&supplements,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return UserInfo{}, ErrNoProfile
	}
	if err != nil {
		return UserInfo{}, fmt.Errorf("query user profile: %w", err)
	}

	info.Injuries = splitLines(injuries)
	info.Supplements = splitLines(supplements)
	return info, nil
}

// Set saves the profile info for the authenticated user.
func (r *sqliteProfileRepository) Set(ctx context.Context, info UserInfo) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, age, weight_kg, fitness_level, lifestyle, injuries, supplements)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			age = excluded.age,
			weight_kg = excluded.weight_kg,
			fitness_level = excluded.fitness_level,
			lifestyle = excluded.lifestyle,
			injuries = excluded.injuries,
			supplements = excluded.supplements`,
		userID,
		info.Age,
		info.WeightKg,
		string(info.FitnessLevel),
		info.Lifestyle,
		joinLines(info.Injuries),
		joinLines(info.Supplements),
	)
	if err != nil {
		return fmt.Errorf("save user profile: %w", err)
	}
	return nil
}

// splitLines splits a newline-separated column into a slice, dropping blanks.
func splitLines(s string) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

func joinLines(items []string) string {
	var kept []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, "\n")
}
