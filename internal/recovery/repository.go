package recovery

import (
	"log/slog"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"
const dateFormat = "2006-01-02"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrNoProfile is returned when the user has not filled in their profile,
	// which the recovery engine needs before it can run.
	ErrNoProfile = errors.NewSentinel("profile not found")
)

// baseRepository carries the shared database handle and logger.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

// repository groups the per-aggregate repositories behind one handle.
type repository struct {
	profiles *sqliteProfileRepository
	workouts *sqliteWorkoutRepository
	wellness *sqliteWellnessRepository
	muscles  *sqliteMuscleRepository
	guides   *sqliteGuideRepository
}

type repositoryFactory struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepositoryFactory(db *sqlite.Database, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{
		db:     db,
		logger: logger,
	}
}

func (f *repositoryFactory) newRepository() *repository {
	return &repository{
		profiles: newSQLiteProfileRepository(f.db, f.logger),
		workouts: newSQLiteWorkoutRepository(f.db, f.logger),
		wellness: newSQLiteWellnessRepository(f.db, f.logger),
		muscles:  newSQLiteMuscleRepository(f.db, f.logger),
		guides:   newSQLiteGuideRepository(f.db, f.logger),
	}
}
