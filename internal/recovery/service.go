package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidInput is returned when a logged workout, sleep session, or
// nutrition day fails validation.
var ErrInvalidInput = errors.NewSentinel("invalid input")

const maxQualityRating = 10

// Service handles the business logic for recovery tracking.
type Service struct {
	repo         *repository
	logger       *slog.Logger
	openaiAPIKey string
	now          func() time.Time
}

// NewService creates a new recovery service.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	factory := newRepositoryFactory(db, logger)
	return &Service{
		repo:         factory.newRepository(),
		logger:       logger,
		openaiAPIKey: openaiAPIKey,
		now:          time.Now,
	}
}

// Refresh recomputes the full recovery snapshot from the user's profile and
// the past week of workouts, sleep, and nutrition, persists the per-muscle
// estimates, and returns the snapshot.
//
// Returns ErrNoProfile when the user has not filled in their profile yet.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	info, err := s.repo.profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			return Snapshot{}, ErrNoProfile
		}
		return Snapshot{}, fmt.Errorf("get profile info: %w", err)
	}

	now := s.now()
	since := now.Add(-lookbackWindow)

	// The three input histories are independent reads.
	var (
		workouts  []Workout
		sleep     []SleepSession
		nutrition []NutritionDay
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		if workouts, loadErr = s.repo.workouts.List(gctx, since); loadErr != nil {
			return fmt.Errorf("list workouts: %w", loadErr)
		}
		return nil
	})
	g.Go(func() error {
		var loadErr error
		if sleep, loadErr = s.repo.wellness.ListSleep(gctx, since); loadErr != nil {
			return fmt.Errorf("list sleep sessions: %w", loadErr)
		}
		return nil
	})
	g.Go(func() error {
		var loadErr error
		if nutrition, loadErr = s.repo.wellness.ListNutrition(gctx, since); loadErr != nil {
			return fmt.Errorf("list nutrition days: %w", loadErr)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load recovery inputs: %w", err)
	}

	profile := BuildProfile(info, sleep, nutrition)
	muscles := ComputeRecovery(profile, workouts, now)

	if err = s.repo.muscles.ReplaceAll(ctx, muscles); err != nil {
		return Snapshot{}, fmt.Errorf("persist muscle recovery: %w", err)
	}

	return Snapshot{
		Muscles:         muscles,
		Recommendations: GenerateRecommendations(muscles),
		Metrics:         AggregateMetrics(muscles, now),
	}, nil
}

// Current returns the stored snapshot without recomputing the estimates.
// When no refresh has run yet it falls through to Refresh.
func (s *Service) Current(ctx context.Context) (Snapshot, error) {
	muscles, err := s.repo.muscles.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list muscle recovery: %w", err)
	}
	if muscles == nil {
		return s.Refresh(ctx)
	}

	// Recommendations and metrics are cheap to derive, so only the muscle
	// estimates are persisted.
	return Snapshot{
		Muscles:         muscles,
		Recommendations: GenerateRecommendations(muscles),
		Metrics:         AggregateMetrics(muscles, s.now()),
	}, nil
}

// LogWorkout stores a completed workout and refreshes the snapshot.
func (s *Service) LogWorkout(ctx context.Context, w Workout) error {
	if w.Type == "" {
		return errors.Wrap(ErrInvalidInput, "workout type is required")
	}
	if w.DurationMinutes <= 0 {
		return errors.Wrap(ErrInvalidInput, "workout duration must be positive",
			slog.Int("duration_minutes", w.DurationMinutes))
	}
	if w.CompletedAt.IsZero() {
		w.CompletedAt = s.now()
	}

	if _, err := s.repo.workouts.Create(ctx, w); err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	return s.refreshAfterInput(ctx)
}

// LogSleep stores one night of sleep and refreshes the snapshot.
func (s *Service) LogSleep(ctx context.Context, session SleepSession) error {
	if session.DurationMinutes <= 0 {
		return errors.Wrap(ErrInvalidInput, "sleep duration must be positive",
			slog.Int("duration_minutes", session.DurationMinutes))
	}
	if session.QualityRating < 0 || session.QualityRating > maxQualityRating {
		return errors.Wrap(ErrInvalidInput, "sleep quality must be between 0 and 10",
			slog.Float64("quality_rating", session.QualityRating))
	}
	if session.SleptOn.IsZero() {
		session.SleptOn = s.now()
	}

	if err := s.repo.wellness.AddSleep(ctx, session); err != nil {
		return fmt.Errorf("add sleep session: %w", err)
	}

	return s.refreshAfterInput(ctx)
}

// LogNutrition stores one day of nutrition totals and refreshes the
// snapshot. Logging the same day twice replaces the earlier totals.
func (s *Service) LogNutrition(ctx context.Context, day NutritionDay) error {
	if day.TotalProteinG < 0 {
		return errors.Wrap(ErrInvalidInput, "protein total cannot be negative",
			slog.Float64("total_protein_g", day.TotalProteinG))
	}
	if day.TotalCalories < 0 {
		return errors.Wrap(ErrInvalidInput, "calorie total cannot be negative",
			slog.Float64("total_calories", day.TotalCalories))
	}
	if day.Day.IsZero() {
		day.Day = s.now()
	}

	if err := s.repo.wellness.UpsertNutrition(ctx, day); err != nil {
		return fmt.Errorf("upsert nutrition day: %w", err)
	}

	return s.refreshAfterInput(ctx)
}

// refreshAfterInput keeps the stored snapshot in sync with new input. Users
// without a profile can log data; the snapshot catches up once the profile
// is saved.
func (s *Service) refreshAfterInput(ctx context.Context) error {
	if _, err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrNoProfile) {
		return fmt.Errorf("refresh after input: %w", err)
	}
	return nil
}

// ListWorkouts returns the workouts inside the current lookback window,
// oldest first.
func (s *Service) ListWorkouts(ctx context.Context) ([]Workout, error) {
	workouts, err := s.repo.workouts.List(ctx, s.now().Add(-lookbackWindow))
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// WellnessWeek bundles the wellness inputs inside the lookback window.
type WellnessWeek struct {
	Sleep     []SleepSession
	Nutrition []NutritionDay
}

// WellnessHistory returns the sleep and nutrition logged inside the current
// lookback window.
func (s *Service) WellnessHistory(ctx context.Context) (WellnessWeek, error) {
	since := s.now().Add(-lookbackWindow)

	sleep, err := s.repo.wellness.ListSleep(ctx, since)
	if err != nil {
		return WellnessWeek{}, fmt.Errorf("list sleep sessions: %w", err)
	}
	nutrition, err := s.repo.wellness.ListNutrition(ctx, since)
	if err != nil {
		return WellnessWeek{}, fmt.Errorf("list nutrition days: %w", err)
	}
	return WellnessWeek{Sleep: sleep, Nutrition: nutrition}, nil
}

// ProfileInfo retrieves the user's profile info.
func (s *Service) ProfileInfo(ctx context.Context) (UserInfo, error) {
	info, err := s.repo.profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			return UserInfo{}, ErrNoProfile
		}
		return UserInfo{}, fmt.Errorf("get profile info: %w", err)
	}
	return info, nil
}

// SaveProfileInfo validates and saves the user's profile info, then
// refreshes the snapshot with the new factors.
func (s *Service) SaveProfileInfo(ctx context.Context, info UserInfo) error {
	if info.Age <= 0 {
		return errors.Wrap(ErrInvalidInput, "age must be positive", slog.Int("age", info.Age))
	}
	if info.WeightKg <= 0 {
		return errors.Wrap(ErrInvalidInput, "weight must be positive",
			slog.Float64("weight_kg", info.WeightKg))
	}
	switch info.FitnessLevel {
	case FitnessBeginner, FitnessIntermediate, FitnessAdvanced, FitnessExpert:
	default:
		return errors.Wrap(ErrInvalidInput, "unknown fitness level",
			slog.String("fitness_level", string(info.FitnessLevel)))
	}

	if err := s.repo.profiles.Set(ctx, info); err != nil {
		return fmt.Errorf("save profile info: %w", err)
	}

	if _, err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh after profile save: %w", err)
	}
	return nil
}

// MuscleGuide returns the reference guide for one muscle group together
// with its stored recovery estimate, if any.
func (s *Service) MuscleGuide(ctx context.Context, group MuscleGroup) (Guide, *MuscleRecovery, error) {
	guide, err := s.repo.guides.Get(ctx, group)
	if err != nil {
		return Guide{}, nil, fmt.Errorf("get muscle guide: %w", err)
	}

	muscles, err := s.repo.muscles.List(ctx)
	if err != nil {
		return Guide{}, nil, fmt.Errorf("list muscle recovery: %w", err)
	}
	for i := range muscles {
		if muscles[i].MuscleGroup == group {
			return guide, &muscles[i], nil
		}
	}
	return guide, nil, nil
}

// WeeklyInsight produces a short narrative summary of the current snapshot.
// With an OpenAI API key configured it asks the model; otherwise, or when
// the call fails, it falls back to a deterministic summary.
func (s *Service) WeeklyInsight(ctx context.Context) (string, error) {
	snapshot, err := s.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("current snapshot: %w", err)
	}

	if s.openaiAPIKey == "" {
		return fallbackInsight(snapshot), nil
	}

	generator := newInsightGenerator(s.openaiAPIKey)
	insight, err := generator.Generate(ctx, snapshot)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to generate insight", slog.Any("error", err))
		return fallbackInsight(snapshot), nil
	}
	return insight, nil
}
