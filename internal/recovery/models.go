// Package recovery estimates how recovered each muscle group is from recent
// training and turns the estimates into actionable recommendations.
//
// The engine is a pure function of its inputs plus an explicit "now"
// timestamp: identical inputs and the same clock always produce identical
// output. Persistence and input collection live in Service; everything else
// in this package is side-effect free.
package recovery

import "time"

// MuscleGroup identifies one of the 14 anatomical regions tracked
// independently. The set is fixed and not user-extensible.
type MuscleGroup string

const (
	Chest      MuscleGroup = "chest"
	Back       MuscleGroup = "back"
	Shoulders  MuscleGroup = "shoulders"
	Biceps     MuscleGroup = "biceps"
	Triceps    MuscleGroup = "triceps"
	Forearms   MuscleGroup = "forearms"
	Quadriceps MuscleGroup = "quadriceps"
	Hamstrings MuscleGroup = "hamstrings"
	Glutes     MuscleGroup = "glutes"
	Calves     MuscleGroup = "calves"
	Core       MuscleGroup = "core"
	Traps      MuscleGroup = "traps"
	Lats       MuscleGroup = "lats"
	Delts      MuscleGroup = "delts"
)

// muscleGroups is the canonical ordering used for all per-muscle output.
var muscleGroups = []MuscleGroup{
	Chest, Back, Shoulders, Biceps, Triceps, Forearms, Quadriceps,
	Hamstrings, Glutes, Calves, Core, Traps, Lats, Delts,
}

// MuscleGroups returns the canonical list of all tracked muscle groups.
func MuscleGroups() []MuscleGroup {
	groups := make([]MuscleGroup, len(muscleGroups))
	copy(groups, muscleGroups)
	return groups
}

// ValidMuscleGroup reports whether s names a tracked muscle group.
func ValidMuscleGroup(s string) bool {
	for _, g := range muscleGroups {
		if g == MuscleGroup(s) {
			return true
		}
	}
	return false
}

// Intensity classifies how hard a workout stressed a muscle.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	IntensityExtreme  Intensity = "extreme"
)

// intensityMultiplier scales base recovery time per intensity.
var intensityMultiplier = map[Intensity]float64{
	IntensityLight:    0.7,
	IntensityModerate: 1.0,
	IntensityHigh:     1.4,
	IntensityExtreme:  1.8,
}

// Status describes a recovery percentage bracket. It is always derived from
// the percentage, never set directly.
type Status string

const (
	StatusFullyRecovered     Status = "fully_recovered"
	StatusMostlyRecovered    Status = "mostly_recovered"
	StatusPartiallyRecovered Status = "partially_recovered"
	StatusNeedsRecovery      Status = "needs_recovery"
	StatusOverworked         Status = "overworked"
)

// StatusForPercentage maps a recovery percentage to its status bracket.
func StatusForPercentage(pct float64) Status {
	switch {
	case pct >= 95:
		return StatusFullyRecovered
	case pct >= 80:
		return StatusMostlyRecovered
	case pct >= 60:
		return StatusPartiallyRecovered
	case pct >= 30:
		return StatusNeedsRecovery
	default:
		return StatusOverworked
	}
}

// FitnessLevel is the user's self-reported training experience tier.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
	FitnessExpert       FitnessLevel = "expert"
)

// UserInfo is the raw profile input the engine consumes. It is owned by the
// profile editor, not by the engine.
type UserInfo struct {
	Age          int
	WeightKg     float64
	FitnessLevel FitnessLevel
	// Lifestyle is a free-form category such as "office_worker" or
	// "physical_job". Unrecognized values are treated as neutral.
	Lifestyle string
	// Injuries holds free-text injury descriptions, matched by keyword
	// against muscle groups when building the recovery profile.
	Injuries    []string
	Supplements []string
}

// SleepSession is one night of sleep as logged by the user.
type SleepSession struct {
	SleptOn         time.Time
	QualityRating   float64 // 0-10
	DurationMinutes int
}

// NutritionDay is one day of nutrition totals. Only protein feeds the
// recovery model; calories are stored for display.
type NutritionDay struct {
	Day           time.Time
	TotalProteinG float64
	TotalCalories float64
}

// Exercise is one entry of a workout's structured exercise list.
type Exercise struct {
	Name string
	Sets int
	RPE  *float64
	// MuscleGroups, when set, names the muscles this exercise targets and
	// takes precedence over name-keyword inference.
	MuscleGroups []MuscleGroup
}

// Workout is a completed training session.
type Workout struct {
	ID              int64
	Type            string
	Difficulty      string
	DurationMinutes int
	CompletedAt     time.Time
	Exercises       []Exercise
}

// Profile holds the per-user multiplicative recovery factors derived from
// age, fitness level, lifestyle, sleep, and nutrition. All factors are
// centered on 1.0; larger means faster recovery.
type Profile struct {
	RecoveryRateMultiplier float64
	SleepQualityImpact     float64
	NutritionQualityImpact float64
	StressLevelImpact      float64
	HydrationImpact        float64
	AgeFactor              float64
	FitnessLevelFactor     float64
	InjuryHistory          map[MuscleGroup]bool
	Supplements            []string
}

// Injured reports whether the muscle group appears in the injury history.
func (p Profile) Injured(g MuscleGroup) bool {
	return p.InjuryHistory[g]
}

// Impact is the effect of one workout on one muscle group. Impacts are
// transient: the calculator only keeps the most recent one per muscle
// within the lookback window and nothing persists them.
type Impact struct {
	MuscleGroup     MuscleGroup
	Intensity       Intensity
	Volume          int // set count
	DurationMinutes float64
	ExerciseTypes   []string
	Compound        bool
	EccentricFocus  bool
	CompletedAt     time.Time
}

// MuscleRecovery is the current recovery estimate for one muscle group. It
// is fully recomputed and overwritten on each run.
type MuscleRecovery struct {
	MuscleGroup           MuscleGroup
	LastWorkoutAt         *time.Time
	WorkoutIntensity      Intensity
	WorkoutVolume         int
	WorkoutMinutes        float64
	Status                Status
	RecoveryPercentage    float64 // 0-100
	EstimatedFullRecovery *time.Time
	FatigueLevel          int     // 1-10
	SorenessLevel         int     // 1-10
	ReadinessScore        float64 // 0-100
	LastUpdated           time.Time
}

// RecommendationType names the kind of action a recommendation suggests.
type RecommendationType string

const (
	RecommendRest          RecommendationType = "rest"
	RecommendLightActivity RecommendationType = "light_activity"
	RecommendStretching    RecommendationType = "stretching"
	RecommendNutrition     RecommendationType = "nutrition"
	RecommendSleep         RecommendationType = "sleep"
)

// Priority orders recommendations for display.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// Recommendation is one actionable nudge for one muscle group. The list is
// regenerated on every run and not persisted.
type Recommendation struct {
	MuscleGroup      MuscleGroup
	Type             RecommendationType
	Priority         Priority
	Message          string
	EstimatedBenefit float64 // 0-100
	DurationMinutes  *int
	Actions          []string
}

// WorkoutShape is the suggested structure for today's training.
type WorkoutShape string

const (
	ShapeFullBody        WorkoutShape = "full_body"
	ShapeUpperLowerSplit WorkoutShape = "upper_lower_split"
	ShapeTargeted        WorkoutShape = "targeted_training"
	ShapeLightCardio     WorkoutShape = "light_cardio"
	ShapeRest            WorkoutShape = "rest"
)

// GlobalMetrics is the whole-body rollup of the per-muscle estimates.
type GlobalMetrics struct {
	OverallRecoveryScore int
	MostRecoveredMuscle  MuscleGroup
	LeastRecoveredMuscle MuscleGroup
	ReadyForTraining     []MuscleGroup
	NeedsRest            []MuscleGroup
	OptimalWorkoutType   WorkoutShape
	// RecoveryTrend needs historical snapshots that are not stored yet, so
	// it stays nil until that feature is defined.
	RecoveryTrend  *string
	LastCalculated time.Time
}

// Snapshot bundles one full engine run for a user.
type Snapshot struct {
	Muscles         []MuscleRecovery
	Recommendations []Recommendation
	Metrics         GlobalMetrics
}
