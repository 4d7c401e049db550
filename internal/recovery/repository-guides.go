package recovery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlinna/recoverly/internal/sqlite"
)

// Guide is the reference material for one muscle group, seeded from
// fixtures.
type Guide struct {
	MuscleGroup      MuscleGroup
	DisplayName      string
	GuidanceMarkdown string
}

// sqliteGuideRepository reads the muscle group reference data.
type sqliteGuideRepository struct {
	baseRepository
}

func newSQLiteGuideRepository(db *sqlite.Database, logger *slog.Logger) *sqliteGuideRepository {
	return &sqliteGuideRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// Get retrieves the guide for one muscle group.
func (r *sqliteGuideRepository) Get(ctx context.Context, group MuscleGroup) (Guide, error) {
	var guide Guide
	var name string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT name, display_name, guidance_markdown
		FROM muscle_groups
		WHERE name = ?`, string(group)).Scan(&name, &guide.DisplayName, &guide.GuidanceMarkdown)
	if errors.Is(err, sql.ErrNoRows) {
		return Guide{}, ErrNotFound
	}
	if err != nil {
		return Guide{}, fmt.Errorf("query muscle group guide: %w", err)
	}
	guide.MuscleGroup = MuscleGroup(name)
	return guide, nil
}
