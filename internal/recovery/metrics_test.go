package recovery_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mlinna/recoverly/internal/recovery"
)

var metricsNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

// musclesWithPct assigns recovery percentages to the first muscles of the
// canonical list and fills the rest with the given default.
func musclesWithPct(defaultPct float64, overrides map[recovery.MuscleGroup]float64) []recovery.MuscleRecovery {
	groups := recovery.MuscleGroups()
	muscles := make([]recovery.MuscleRecovery, 0, len(groups))
	for _, group := range groups {
		pct := defaultPct
		if v, ok := overrides[group]; ok {
			pct = v
		}
		muscles = append(muscles, muscleAt(group, pct, 2, 2))
	}
	return muscles
}

func TestAggregateMetrics_AllRecovered(t *testing.T) {
	metrics := recovery.AggregateMetrics(musclesWithPct(100, nil), metricsNow)

	if metrics.OverallRecoveryScore != 100 {
		t.Errorf("overall score = %d, want 100", metrics.OverallRecoveryScore)
	}
	if len(metrics.ReadyForTraining) != len(recovery.MuscleGroups()) {
		t.Errorf("ready count = %d, want all %d", len(metrics.ReadyForTraining), len(recovery.MuscleGroups()))
	}
	if len(metrics.NeedsRest) != 0 {
		t.Errorf("needs rest count = %d, want 0", len(metrics.NeedsRest))
	}
	if metrics.OptimalWorkoutType != recovery.ShapeFullBody {
		t.Errorf("workout type = %s, want %s", metrics.OptimalWorkoutType, recovery.ShapeFullBody)
	}
	if !metrics.LastCalculated.Equal(metricsNow) {
		t.Errorf("LastCalculated = %v, want %v", metrics.LastCalculated, metricsNow)
	}
	if metrics.RecoveryTrend != nil {
		t.Errorf("RecoveryTrend = %v, want nil until history exists", *metrics.RecoveryTrend)
	}
}

func TestAggregateMetrics_ExtremesAndBuckets(t *testing.T) {
	muscles := musclesWithPct(75, map[recovery.MuscleGroup]float64{
		recovery.Chest:      95,
		recovery.Back:       85,
		recovery.Quadriceps: 20,
		recovery.Hamstrings: 55,
	})

	metrics := recovery.AggregateMetrics(muscles, metricsNow)

	if metrics.MostRecoveredMuscle != recovery.Chest {
		t.Errorf("most recovered = %s, want %s", metrics.MostRecoveredMuscle, recovery.Chest)
	}
	if metrics.LeastRecoveredMuscle != recovery.Quadriceps {
		t.Errorf("least recovered = %s, want %s", metrics.LeastRecoveredMuscle, recovery.Quadriceps)
	}
	if diff := cmp.Diff([]recovery.MuscleGroup{recovery.Chest, recovery.Back}, metrics.ReadyForTraining); diff != "" {
		t.Errorf("ready for training mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]recovery.MuscleGroup{recovery.Quadriceps, recovery.Hamstrings}, metrics.NeedsRest); diff != "" {
		t.Errorf("needs rest mismatch (-want +got):\n%s", diff)
	}
	// 10 muscles at 75 plus 95, 85, 20, and 55 averages to 71.8, rounded.
	if metrics.OverallRecoveryScore != 72 {
		t.Errorf("overall score = %d, want 72", metrics.OverallRecoveryScore)
	}
}

func TestAggregateMetrics_BucketBoundariesAreStrict(t *testing.T) {
	muscles := musclesWithPct(70, map[recovery.MuscleGroup]float64{
		recovery.Chest: 80, // not strictly above the ready threshold
		recovery.Back:  60, // not strictly below the rest threshold
	})

	metrics := recovery.AggregateMetrics(muscles, metricsNow)

	if len(metrics.ReadyForTraining) != 0 {
		t.Errorf("ready for training = %v, want none at exactly 80", metrics.ReadyForTraining)
	}
	if len(metrics.NeedsRest) != 0 {
		t.Errorf("needs rest = %v, want none at exactly 60", metrics.NeedsRest)
	}
}

func TestAggregateMetrics_WorkoutShapeLadder(t *testing.T) {
	testCases := []struct {
		name       string
		readyCount int
		defaultPct float64
		want       recovery.WorkoutShape
	}{
		{name: "six ready means full body", readyCount: 6, defaultPct: 70, want: recovery.ShapeFullBody},
		{name: "four ready means upper lower split", readyCount: 4, defaultPct: 70, want: recovery.ShapeUpperLowerSplit},
		{name: "two ready means targeted", readyCount: 2, defaultPct: 70, want: recovery.ShapeTargeted},
		{name: "none ready but decent overall means light cardio", readyCount: 0, defaultPct: 75, want: recovery.ShapeLightCardio},
		{name: "run down means rest", readyCount: 0, defaultPct: 45, want: recovery.ShapeRest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			overrides := make(map[recovery.MuscleGroup]float64)
			for _, group := range recovery.MuscleGroups()[:tc.readyCount] {
				overrides[group] = 90
			}

			metrics := recovery.AggregateMetrics(musclesWithPct(tc.defaultPct, overrides), metricsNow)
			if metrics.OptimalWorkoutType != tc.want {
				t.Errorf("workout type = %s, want %s", metrics.OptimalWorkoutType, tc.want)
			}
		})
	}
}
